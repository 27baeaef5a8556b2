package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/usecase"
)

// Mock implementations

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByLogin(ctx context.Context, username, email string) (*model.User, error) {
	args := m.Called(ctx, username, email)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) SetRefreshToken(ctx context.Context, id bson.ObjectID, token string) error {
	return m.Called(ctx, id, token).Error(0)
}

func (m *MockUserRepository) SetPassword(ctx context.Context, id bson.ObjectID, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *MockUserRepository) UpdateAccount(ctx context.Context, id bson.ObjectID, fullName, email string) (*model.User, error) {
	args := m.Called(ctx, id, fullName, email)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) SetAvatar(ctx context.Context, id bson.ObjectID, url string) (*model.User, error) {
	args := m.Called(ctx, id, url)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) SetCoverImage(ctx context.Context, id bson.ObjectID, url string) (*model.User, error) {
	args := m.Called(ctx, id, url)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) ChannelProfile(ctx context.Context, username string, actor bson.ObjectID) (*dto.ChannelProfile, error) {
	args := m.Called(ctx, username, actor)
	profile, _ := args.Get(0).(*dto.ChannelProfile)
	return profile, args.Error(1)
}

func (m *MockUserRepository) PushWatchHistory(ctx context.Context, id, videoID bson.ObjectID, limit int) error {
	return m.Called(ctx, id, videoID, limit).Error(0)
}

func (m *MockUserRepository) WatchHistory(ctx context.Context, id bson.ObjectID) ([]dto.VideoFeedItem, error) {
	args := m.Called(ctx, id)
	items, _ := args.Get(0).([]dto.VideoFeedItem)
	return items, args.Error(1)
}

type MockVideoRepository struct {
	mock.Mock
}

func (m *MockVideoRepository) Create(ctx context.Context, video *model.Video) error {
	return m.Called(ctx, video).Error(0)
}

func (m *MockVideoRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.Video, error) {
	args := m.Called(ctx, id)
	video, _ := args.Get(0).(*model.Video)
	return video, args.Error(1)
}

func (m *MockVideoRepository) Detail(ctx context.Context, id, actor bson.ObjectID) (*dto.VideoFeedItem, error) {
	args := m.Called(ctx, id, actor)
	item, _ := args.Get(0).(*dto.VideoFeedItem)
	return item, args.Error(1)
}

func (m *MockVideoRepository) Feed(ctx context.Context, filter repository.VideoFeedFilter, page dto.Page) ([]dto.VideoFeedItem, int64, error) {
	args := m.Called(ctx, filter, page)
	items, _ := args.Get(0).([]dto.VideoFeedItem)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockVideoRepository) Update(ctx context.Context, id bson.ObjectID, update repository.VideoUpdate) (*model.Video, error) {
	args := m.Called(ctx, id, update)
	video, _ := args.Get(0).(*model.Video)
	return video, args.Error(1)
}

func (m *MockVideoRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockVideoRepository) TogglePublish(ctx context.Context, id bson.ObjectID) (*model.Video, error) {
	args := m.Called(ctx, id)
	video, _ := args.Get(0).(*model.Video)
	return video, args.Error(1)
}

func (m *MockVideoRepository) IncrementViews(ctx context.Context, id bson.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockVideoRepository) ListByOwner(ctx context.Context, owner bson.ObjectID) ([]model.Video, error) {
	args := m.Called(ctx, owner)
	videos, _ := args.Get(0).([]model.Video)
	return videos, args.Error(1)
}

func (m *MockVideoRepository) Summaries(ctx context.Context, ids []bson.ObjectID, actor bson.ObjectID) ([]dto.PlaylistVideo, error) {
	args := m.Called(ctx, ids, actor)
	videos, _ := args.Get(0).([]dto.PlaylistVideo)
	return videos, args.Error(1)
}

func (m *MockVideoRepository) OwnerTotals(ctx context.Context, owner bson.ObjectID) (int64, int64, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.Comment, error) {
	args := m.Called(ctx, id)
	comment, _ := args.Get(0).(*model.Comment)
	return comment, args.Error(1)
}

func (m *MockCommentRepository) Feed(ctx context.Context, video, actor bson.ObjectID, page dto.Page) ([]dto.CommentFeedItem, int64, error) {
	args := m.Called(ctx, video, actor, page)
	items, _ := args.Get(0).([]dto.CommentFeedItem)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) UpdateContent(ctx context.Context, id bson.ObjectID, content string) (*model.Comment, error) {
	args := m.Called(ctx, id, content)
	comment, _ := args.Get(0).(*model.Comment)
	return comment, args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCommentRepository) DeleteByVideo(ctx context.Context, video bson.ObjectID) ([]bson.ObjectID, error) {
	args := m.Called(ctx, video)
	ids, _ := args.Get(0).([]bson.ObjectID)
	return ids, args.Error(1)
}

type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Toggle(ctx context.Context, target model.LikeTarget, subject, actor bson.ObjectID) (*model.Like, bool, error) {
	args := m.Called(ctx, target, subject, actor)
	like, _ := args.Get(0).(*model.Like)
	return like, args.Bool(1), args.Error(2)
}

func (m *MockLikeRepository) DeleteBySubjects(ctx context.Context, target model.LikeTarget, subjects []bson.ObjectID) error {
	return m.Called(ctx, target, subjects).Error(0)
}

func (m *MockLikeRepository) LikedVideos(ctx context.Context, actor bson.ObjectID, page dto.Page) ([]dto.VideoFeedItem, int64, error) {
	args := m.Called(ctx, actor, page)
	items, _ := args.Get(0).([]dto.VideoFeedItem)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockLikeRepository) CountForOwner(ctx context.Context, target model.LikeTarget, owner bson.ObjectID) (int64, error) {
	args := m.Called(ctx, target, owner)
	return args.Get(0).(int64), args.Error(1)
}

type MockTweetRepository struct {
	mock.Mock
}

func (m *MockTweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	return m.Called(ctx, tweet).Error(0)
}

func (m *MockTweetRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.Tweet, error) {
	args := m.Called(ctx, id)
	tweet, _ := args.Get(0).(*model.Tweet)
	return tweet, args.Error(1)
}

func (m *MockTweetRepository) Feed(ctx context.Context, owner, actor bson.ObjectID, page dto.Page) ([]dto.TweetFeedItem, int64, error) {
	args := m.Called(ctx, owner, actor, page)
	items, _ := args.Get(0).([]dto.TweetFeedItem)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockTweetRepository) UpdateContent(ctx context.Context, id bson.ObjectID, content string) (*model.Tweet, error) {
	args := m.Called(ctx, id, content)
	tweet, _ := args.Get(0).(*model.Tweet)
	return tweet, args.Error(1)
}

func (m *MockTweetRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Toggle(ctx context.Context, subscriber, channel bson.ObjectID) (*model.Subscription, bool, error) {
	args := m.Called(ctx, subscriber, channel)
	subscription, _ := args.Get(0).(*model.Subscription)
	return subscription, args.Bool(1), args.Error(2)
}

func (m *MockSubscriptionRepository) Subscribers(ctx context.Context, channel bson.ObjectID, page dto.Page) ([]dto.ChannelItem, int64, error) {
	args := m.Called(ctx, channel, page)
	items, _ := args.Get(0).([]dto.ChannelItem)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockSubscriptionRepository) SubscribedChannels(ctx context.Context, subscriber bson.ObjectID, page dto.Page) ([]dto.ChannelItem, int64, error) {
	args := m.Called(ctx, subscriber, page)
	items, _ := args.Get(0).([]dto.ChannelItem)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockSubscriptionRepository) CountSubscribers(ctx context.Context, channel bson.ObjectID) (int64, error) {
	args := m.Called(ctx, channel)
	return args.Get(0).(int64), args.Error(1)
}

type MockPlaylistRepository struct {
	mock.Mock
}

func (m *MockPlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	return m.Called(ctx, playlist).Error(0)
}

func (m *MockPlaylistRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.Playlist, error) {
	args := m.Called(ctx, id)
	playlist, _ := args.Get(0).(*model.Playlist)
	return playlist, args.Error(1)
}

func (m *MockPlaylistRepository) ListByOwner(ctx context.Context, owner bson.ObjectID) ([]model.Playlist, error) {
	args := m.Called(ctx, owner)
	playlists, _ := args.Get(0).([]model.Playlist)
	return playlists, args.Error(1)
}

func (m *MockPlaylistRepository) Update(ctx context.Context, id bson.ObjectID, name, description string) (*model.Playlist, error) {
	args := m.Called(ctx, id, name, description)
	playlist, _ := args.Get(0).(*model.Playlist)
	return playlist, args.Error(1)
}

func (m *MockPlaylistRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPlaylistRepository) AddVideo(ctx context.Context, id, video bson.ObjectID) (*model.Playlist, error) {
	args := m.Called(ctx, id, video)
	playlist, _ := args.Get(0).(*model.Playlist)
	return playlist, args.Error(1)
}

func (m *MockPlaylistRepository) RemoveVideo(ctx context.Context, id, video bson.ObjectID) (*model.Playlist, error) {
	args := m.Called(ctx, id, video)
	playlist, _ := args.Get(0).(*model.Playlist)
	return playlist, args.Error(1)
}

func (m *MockPlaylistRepository) PullVideoEverywhere(ctx context.Context, video bson.ObjectID) error {
	return m.Called(ctx, video).Error(0)
}

type MockMediaStorage struct {
	mock.Mock
}

func (m *MockMediaStorage) Upload(ctx context.Context, localPath string, kind model.MediaKind) (*model.MediaAsset, error) {
	args := m.Called(ctx, localPath, kind)
	asset, _ := args.Get(0).(*model.MediaAsset)
	return asset, args.Error(1)
}

func (m *MockMediaStorage) Delete(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event model.DomainEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

type MockStatsCache struct {
	mock.Mock
}

func (m *MockStatsCache) Get(ctx context.Context, channelID string) (*dto.ChannelStats, error) {
	args := m.Called(ctx, channelID)
	stats, _ := args.Get(0).(*dto.ChannelStats)
	return stats, args.Error(1)
}

func (m *MockStatsCache) Set(ctx context.Context, channelID string, stats *dto.ChannelStats, ttl time.Duration) error {
	return m.Called(ctx, channelID, stats, ttl).Error(0)
}

func (m *MockStatsCache) Invalidate(ctx context.Context, channelID string) error {
	return m.Called(ctx, channelID).Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(userID string, event model.ActivityEvent) {
	m.Called(userID, event)
}

type MockHealth struct {
	mock.Mock
}

func (m *MockHealth) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var testPagination = usecase.Pagination{DefaultLimit: 10, MaxLimit: 100}
