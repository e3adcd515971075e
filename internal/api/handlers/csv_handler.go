package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TwisterMc/JobTwister/internal/services"
	"github.com/TwisterMc/JobTwister/internal/utils"
)

const maxImportSize = 16 << 20

type CSVHandler struct {
	svc services.CSVService
}

func NewCSVHandler(svc services.CSVService) *CSVHandler {
	return &CSVHandler{svc: svc}
}

// Import accepts the CSV either as a multipart "file" field (what the UI's
// file picker sends) or as a raw text body.
func (h *CSVHandler) Import(c *gin.Context) {
	const op = "CSVHandler.Import"

	var blob string
	if fh, err := c.FormFile("file"); err == nil {
		if ext := strings.ToLower(filepath.Ext(fh.Filename)); ext != "" && ext != ".csv" && ext != ".txt" {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "only .csv uploads are supported", nil))
			return
		}
		f, err := fh.Open()
		if err != nil {
			writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
			return
		}
		defer f.Close()
		b, err := io.ReadAll(io.LimitReader(f, maxImportSize))
		if err != nil {
			writeError(c, utils.E(utils.CodeInternal, op, "failed to read upload", err))
			return
		}
		blob = string(b)
	} else {
		b, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "unreadable request body", err))
			return
		}
		blob = string(b)
	}

	summary, err := h.svc.Import(c.Request.Context(), blob)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Export streams every job as a CSV download; the UI hands the bytes to the
// native save dialog.
func (h *CSVHandler) Export(c *gin.Context) {
	blob, err := h.svc.Export(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="jobs.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(blob))
}
