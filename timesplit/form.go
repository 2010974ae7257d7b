package timesplit

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

const defaultMultipartMemory = 32 << 20 // 32 MB

// Parse the request form of c, i.e., query parameters and the urlencoded or multipart body.
func FormValues(c *gin.Context) (url.Values, error) {
	if err := c.Request.ParseMultipartForm(defaultMultipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, ErrParse.Wrapf(err, "failed to parse form")
	}
	return c.Request.Form, nil
}

// Parse the request form of c and apply the derived parameters to rec, see Splitter.Assign.
func AssignForm[T any](c *gin.Context, s *Splitter[T], rec T) error {
	values, err := FormValues(c)
	if err != nil {
		return err
	}
	return s.Assign(rec, values)
}
