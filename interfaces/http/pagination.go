package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/go-querystring/query"

	"vidtube/domain/dto"
)

// pageQuery is the query string of every paged endpoint except the video feed.
type pageQuery struct {
	Page  int `form:"page" url:"page,omitempty"`
	Limit int `form:"limit" url:"limit,omitempty"`
}

func bindPage(c *gin.Context) (pageQuery, error) {
	var q pageQuery
	err := c.ShouldBindQuery(&q)
	return q, err
}

// setPageLinks adds an RFC 8288 Link header pointing at the neighbouring pages. params is
// the bound query struct, so filters carry over to the links.
func setPageLinks[T any](c *gin.Context, params interface{}, res *dto.PageResult[T]) {
	values, err := query.Values(params)
	if err != nil {
		values = url.Values{}
	}
	var links []string
	if res.HasPrevPage {
		links = append(links, pageLink(c, values, res.Page-1, res.Limit, "prev"))
	}
	if res.HasNextPage {
		links = append(links, pageLink(c, values, res.Page+1, res.Limit, "next"))
	}
	if len(links) > 0 {
		c.Header("Link", strings.Join(links, ", "))
	}
}

func pageLink(c *gin.Context, values url.Values, page, limit int, rel string) string {
	next := url.Values{}
	for k, v := range values {
		next[k] = v
	}
	next.Set("page", strconv.Itoa(page))
	next.Set("limit", strconv.Itoa(limit))
	return fmt.Sprintf(`<%s?%s>; rel="%s"`, c.Request.URL.Path, next.Encode(), rel)
}
