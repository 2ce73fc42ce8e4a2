package handler

import (
	"net/http"
	"strings"

	"valuescore/internal/model"
	"valuescore/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	contentTypeText     = "text/plain; charset=utf-8"
	internalErrorBody   = "Internal Server Error"
	validationErrorHead = "Validation Error"
)

// FormatValidationErrors renders every validation error, one per line, under a
// "Validation Error" heading.
func FormatValidationErrors(errs model.ValidationErrors) string {
	var b strings.Builder
	b.WriteString(validationErrorHead)
	for _, e := range errs {
		b.WriteString("\nField: ")
		b.WriteString(utils.FormatLoc(e.Loc))
		b.WriteString(", Error: ")
		b.WriteString(e.Msg)
	}
	return b.String()
}

func writeValidationErrors(c *gin.Context, errs model.ValidationErrors) {
	c.Data(http.StatusBadRequest, contentTypeText, []byte(FormatValidationErrors(errs)))
}

func writeInternalError(c *gin.Context) {
	c.Data(http.StatusInternalServerError, contentTypeText, []byte(internalErrorBody))
}
