package jerseyHandler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"

	"JerseyVision/internal/api/jersey"
	contextPkg "JerseyVision/pkg/context"
	"JerseyVision/pkg/handlerUtil"
	"JerseyVision/pkg/log"
	"JerseyVision/pkg/utils"
)

// Predict accepts a multipart image upload, validates it at the boundary and
// hands the decoded bytes to the extraction pipeline. All pipeline-internal
// degradation (per-variant faults, zero detections) still produces a 200
// response; only malformed input reaches the 4xx paths here.
func (h *JerseyHandler) Predict(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing jersey number prediction request")

	file, err := ctx.FormFile("image")
	if err != nil {
		return errHandler.Handle(ctx, requestID, jersey.ErrMissingImageField, ctx.Path(), "form_file")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"file_name":  file.Filename,
		"file_size":  file.Size,
	}).Debug("Processing file upload")

	if err := h.utils.ValidateImageFile(file); err != nil {
		return errHandler.Handle(ctx, requestID, uploadError(err), ctx.Path(), "validate_image_file")
	}

	fileContent, err := file.Open()
	if err != nil {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to open uploaded file")
		return errHandler.Handle(ctx, requestID, jersey.ErrInternalServerError, ctx.Path(), "open_file")
	}
	defer fileContent.Close()

	imageData, err := h.utils.ReadFileBytes(fileContent)
	if err != nil {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to read uploaded file")
		return errHandler.Handle(ctx, requestID, jersey.ErrInternalServerError, ctx.Path(), "read_file")
	}

	if err := h.utils.CheckImageDecodable(imageData); err != nil {
		return errHandler.Handle(ctx, requestID, uploadError(err), ctx.Path(), "check_image_decodable")
	}

	result, err := h.jerseyService.Predict(c, imageData)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "predict")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"count":      result.Count,
		}).Info("Jersey number prediction successful")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

// uploadError maps upload validation failures to the coded errors of the
// jersey domain.
func uploadError(err error) error {
	switch {
	case errors.Is(err, utils.ErrNoFile), errors.Is(err, utils.ErrEmptyFilename):
		return jersey.ErrEmptyFilename
	case errors.Is(err, utils.ErrFileTooLarge):
		return jersey.ErrImageTooLarge
	case errors.Is(err, utils.ErrUnsupportedFormat), errors.Is(err, utils.ErrNotAnImage):
		return jersey.ErrUnsupportedImageFormat
	case errors.Is(err, utils.ErrUndecodable), errors.Is(err, utils.ErrBadDimensions):
		return jersey.ErrUndecodableImage
	default:
		return err
	}
}
