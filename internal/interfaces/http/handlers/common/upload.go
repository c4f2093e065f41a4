// Package common holds request helpers shared by handler packages.
package common

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autocrm/autocrm/internal/application/crm"
	"github.com/autocrm/autocrm/internal/shared/constants"
	"github.com/autocrm/autocrm/internal/shared/errors"
	"github.com/autocrm/autocrm/internal/shared/utils"
)

// FormUpload opens the "file" part of a multipart request. The returned
// func closes it.
func FormUpload(c *gin.Context) (crm.Upload, func(), bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, constants.MaxUploadBytes+1<<20)

	header, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("file is required", err.Error()))
		return crm.Upload{}, nil, false
	}
	if header.Size > constants.MaxUploadBytes {
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "file exceeds the upload limit")
		return crm.Upload{}, nil, false
	}

	body, err := header.Open()
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("failed to read uploaded file", err.Error()))
		return crm.Upload{}, nil, false
	}

	return crm.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get(constants.HeaderContentType),
		Size:        header.Size,
		Body:        body,
	}, func() { _ = body.Close() }, true
}
