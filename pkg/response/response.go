package response

import (
	"vidtube/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// ShowStackKey is the gin context key that enables stack traces in error bodies.
const ShowStackKey = "show_error_stack"

type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

type ErrorEnvelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
	Errors     []string    `json:"errors"`
	Stack      string      `json:"stack,omitempty"`
}

func JSON(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < 400,
	})
}

// Error writes err as an error envelope and aborts the chain.
func Error(c *gin.Context, err error) {
	appErr := apperror.From(err)

	body := ErrorEnvelope{
		StatusCode: appErr.StatusCode,
		Data:       nil,
		Message:    appErr.Message,
		Success:    false,
		Errors:     appErr.Errors,
	}
	if body.Errors == nil {
		body.Errors = []string{}
	}
	if c.GetBool(ShowStackKey) {
		body.Stack = appErr.Stack()
		if appErr.Err != nil {
			body.Errors = append(body.Errors, appErr.Err.Error())
		}
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.StatusCode, body)
}

// StackTraces toggles stack output for every request in the chain.
func StackTraces(show bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ShowStackKey, show)
		c.Next()
	}
}
