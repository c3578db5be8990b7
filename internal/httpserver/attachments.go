package httpserver

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"tailorcart/internal/attachment"
	"tailorcart/internal/domain"
)

func (h *handlers) uploadAttachments(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		badRequest(c, "multipart form required")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		badRequest(c, "files required")
		return
	}
	if len(files) > domain.MaxAttachments {
		writeError(c, domain.ErrAttachmentLimit)
		return
	}

	payloads := make([][]byte, 0, len(files))
	for _, fh := range files {
		if fh.Size > attachment.MaxSize {
			writeError(c, attachment.ErrTooLarge)
			return
		}
		f, err := fh.Open()
		if err != nil {
			badRequest(c, "unreadable file "+fh.Filename)
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, attachment.MaxSize+1))
		f.Close()
		if err != nil {
			badRequest(c, "unreadable file "+fh.Filename)
			return
		}
		payloads = append(payloads, data)
	}

	names, err := h.attachments.Save(c.Request.Context(), payloads)
	if err != nil {
		writeError(c, err)
		return
	}
	h.logger.Printf("attachments: stored count=%d", len(names))
	c.JSON(http.StatusCreated, gin.H{"names": names})
}

func (h *handlers) getAttachment(c *gin.Context) {
	data, err := h.attachments.Load(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}

func (h *handlers) deleteAttachment(c *gin.Context) {
	if err := h.attachments.Delete(c.Request.Context(), c.Param("name")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
