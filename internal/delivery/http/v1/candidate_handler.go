package v1

import (
	"net/http"
	"slices"

	"candidatehub-backend/internal/delivery/http/response"
	"candidatehub-backend/internal/domain"
	"candidatehub-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

func NewCandidateHandler(r gin.IRouter, candidateUC domain.CandidateUsecase, writeMiddleware ...gin.HandlerFunc) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	candidates := r.Group("/candidates")
	{
		candidates.POST("", slices.Concat(writeMiddleware, []gin.HandlerFunc{handler.CreateOrUpdate})...)
		candidates.GET("", handler.GetAll)
		candidates.GET("/email/:email", handler.GetByEmail)
	}
}

// CreateOrUpdate godoc
// @Summary      Create or update a candidate
// @Description  Creates a candidate, or overwrites the one with the same email (case-insensitive)
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        request body domain.CandidateInput true "Candidate"
// @Success      200  {object}  response.Response{data=domain.CandidateResponse}
// @Failure      400  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /candidates [post]
func (h *CandidateHandler) CreateOrUpdate(c *gin.Context) {
	var in domain.CandidateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	candidate, err := h.candidateUC.CreateOrUpdate(c.Request.Context(), &in)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate saved successfully", candidate)
}

// GetByEmail godoc
// @Summary      Get a candidate by email
// @Tags         candidates
// @Produce      json
// @Param        email path string true "Candidate email"
// @Success      200  {object}  response.Response{data=domain.CandidateResponse}
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /candidates/email/{email} [get]
func (h *CandidateHandler) GetByEmail(c *gin.Context) {
	candidate, found, err := h.candidateUC.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		c.Error(err)
		return
	}
	if !found {
		c.Error(apperror.NotFound("Candidate not found!"))
		return
	}

	response.Success(c, http.StatusOK, "Candidate retrieved successfully", candidate)
}

// GetAll godoc
// @Summary      List candidates
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.CandidateResponse}
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /candidates [get]
func (h *CandidateHandler) GetAll(c *gin.Context) {
	candidates, err := h.candidateUC.GetAll(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	if len(candidates) == 0 {
		c.Error(apperror.NotFound("No candidates found!"))
		return
	}

	response.Success(c, http.StatusOK, "Candidates retrieved successfully", candidates)
}
