package ticket

import (
	"github.com/gin-gonic/gin"

	"github.com/autocrm/autocrm/internal/interfaces/dto"
	"github.com/autocrm/autocrm/internal/interfaces/http/handlers/common"
	"github.com/autocrm/autocrm/internal/shared/utils"
)

// ListFiles handles GET /tickets/:id/files
func (h *Handler) ListFiles(c *gin.Context) {
	who, ok := currentCaller(c)
	if !ok {
		return
	}
	t, ok := h.loadTicket(c, who)
	if !ok {
		return
	}

	files, err := h.files.GetTicketFiles(c.Request.Context(), t.ID())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, dto.ToFileDTOs(files), len(files))
}

// UploadFile handles POST /tickets/:id/files with a multipart "file" field.
func (h *Handler) UploadFile(c *gin.Context) {
	who, ok := currentCaller(c)
	if !ok {
		return
	}
	t, ok := h.loadTicket(c, who)
	if !ok {
		return
	}

	up, closeFn, ok := common.FormUpload(c)
	if !ok {
		return
	}
	defer closeFn()

	f, err := h.files.UploadTicketFile(c.Request.Context(), t.ID(), up)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("ticket file uploaded",
		"ticket_id", t.ID(),
		"file_id", f.ID(),
		"user_id", who.id,
	)
	utils.CreatedResponse(c, dto.ToFileDTO(f), "File uploaded successfully")
}

// DeleteFile handles DELETE /files/:id
func (h *Handler) DeleteFile(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "file")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.files.DeleteTicketFile(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
