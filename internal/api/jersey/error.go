package jersey

import (
	"JerseyVision/pkg/response"
	"net/http"
)

var (
	ErrMissingImageField = response.NewErrorWithDetail(http.StatusBadRequest,
		"image field is required",
		"send the image using multipart/form-data with field 'image'")
	ErrEmptyFilename = response.NewErrorWithDetail(http.StatusBadRequest,
		"no file uploaded",
		"the 'image' field is empty")
	ErrUnsupportedImageFormat = response.NewErrorWithDetail(http.StatusBadRequest,
		"unsupported image format",
		"use .jpg, .jpeg, .png or .webp files")
	ErrImageTooLarge = response.NewErrorWithDetail(http.StatusRequestEntityTooLarge,
		"file too large",
		"the maximum accepted payload is 16MB")
	ErrUndecodableImage = response.NewErrorWithDetail(http.StatusBadRequest,
		"cannot decode image",
		"the image file is corrupted or invalid")
	ErrInternalServerError = response.NewError(http.StatusInternalServerError, "internal server error")
)
