package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"surfhouse/internal/app/commands"
	"surfhouse/internal/app/dto"
	leadsapp "surfhouse/internal/app/handlers/leads"
	domainleads "surfhouse/internal/domain/leads"
	"surfhouse/internal/domain/pricing"
)

type LeadHandler struct {
	Commands commands.Bus
	Repo     domainleads.Repository
}

type leadDetailsRequest struct {
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Notes        *string `json:"notes"`
	People       *int    `json:"people"`
	CheckIn      *string `json:"check_in"`
	CheckOut     *string `json:"check_out"`
	RoomCategory *string `json:"room_category"`
	PackageID    *string `json:"package_id"`

	Breakfast   *bool `json:"breakfast"`
	BoardRental *bool `json:"board_rental"`

	SurfLessons *int `json:"surf_lessons"`
	YogaLessons *int `json:"yoga_lessons"`
	SurfSkate   *int `json:"surf_skate"`
	Massage     *int `json:"massage"`
	SurfGuide   *int `json:"surf_guide"`

	VideoAnalysisExtra   *int `json:"video_analysis_extra"`
	VideoAnalysisPackage *int `json:"video_analysis_package"`

	Transfer        *bool `json:"transfer"`
	TransferExtra   *bool `json:"transfer_extra"`
	TransferPackage *int  `json:"transfer_package"`

	Hike              *int `json:"hike"`
	RioCityTour       *int `json:"rio_city_tour"`
	CariocaExperience *int `json:"carioca_experience"`

	AccommodationOverride *int64 `json:"accommodation_override"`
	ExtraFee              *int64 `json:"extra_fee"`
}

func (r leadDetailsRequest) toDetails() leadsapp.Details {
	return leadsapp.Details{
		Email:                 r.Email,
		Phone:                 r.Phone,
		Notes:                 r.Notes,
		People:                r.People,
		CheckIn:               r.CheckIn,
		CheckOut:              r.CheckOut,
		RoomCategory:          r.RoomCategory,
		PackageID:             r.PackageID,
		Breakfast:             r.Breakfast,
		BoardRental:           r.BoardRental,
		SurfLessons:           r.SurfLessons,
		YogaLessons:           r.YogaLessons,
		SurfSkate:             r.SurfSkate,
		Massage:               r.Massage,
		SurfGuide:             r.SurfGuide,
		VideoAnalysisExtra:    r.VideoAnalysisExtra,
		VideoAnalysisPackage:  r.VideoAnalysisPackage,
		Transfer:              r.Transfer,
		TransferExtra:         r.TransferExtra,
		TransferPackage:       r.TransferPackage,
		Hike:                  r.Hike,
		RioCityTour:           r.RioCityTour,
		CariocaExperience:     r.CariocaExperience,
		AccommodationOverride: r.AccommodationOverride,
		ExtraFee:              r.ExtraFee,
	}
}

type createLeadRequest struct {
	Name   string `json:"name" binding:"required"`
	People int    `json:"people"`
	leadDetailsRequest
}

func (h LeadHandler) Create(c *gin.Context) {
	var req createLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := leadsapp.CreateLeadCommand{
		CommandID: uuid.NewString(),
		Name:      req.Name,
		People:    req.People,
		Details:   req.toDetails(),
	}
	result, err := commands.Dispatch[leadsapp.CreateLeadCommand, *leadsapp.CreateLeadResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h LeadHandler) Get(c *gin.Context) {
	lead, err := h.Repo.ByID(c.Request.Context(), domainleads.LeadID(c.Param("id")))
	if err != nil {
		statusForError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapLeadDetail(lead))
}

func (h LeadHandler) List(c *gin.Context) {
	var (
		all []*domainleads.Lead
		err error
	)
	if stage := c.Query("stage"); stage != "" {
		all, err = h.Repo.ListByStage(c.Request.Context(), domainleads.Stage(stage))
	} else {
		all, err = h.Repo.List(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	items := make([]dto.LeadSummary, 0, len(all))
	for _, lead := range all {
		items = append(items, dto.MapLeadSummary(lead))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h LeadHandler) Board(c *gin.Context) {
	all, err := h.Repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.MapBoard(all))
}

type updateLeadRequest struct {
	Name *string `json:"name"`
	leadDetailsRequest
}

func (h LeadHandler) Update(c *gin.Context) {
	var req updateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := leadsapp.UpdateLeadCommand{
		LeadID:  c.Param("id"),
		Name:    req.Name,
		Details: req.toDetails(),
	}
	result, err := commands.Dispatch[leadsapp.UpdateLeadCommand, *leadsapp.UpdateLeadResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		statusForError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapLeadDetail(result.Lead))
}

func (h LeadHandler) Delete(c *gin.Context) {
	cmd := leadsapp.DeleteLeadCommand{LeadID: c.Param("id")}
	if _, err := commands.Dispatch[leadsapp.DeleteLeadCommand, *leadsapp.DeleteLeadResult](c.Request.Context(), h.Commands, cmd); err != nil {
		statusForError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type moveLeadRequest struct {
	Stage string `json:"stage" binding:"required"`
}

func (h LeadHandler) Move(c *gin.Context) {
	var req moveLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := leadsapp.MoveLeadCommand{LeadID: c.Param("id"), Stage: req.Stage}
	result, err := commands.Dispatch[leadsapp.MoveLeadCommand, *leadsapp.MoveLeadResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		statusForError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapLeadDetail(result.Lead))
}

func (h LeadHandler) Quote(c *gin.Context) {
	cmd := leadsapp.QuoteLeadCommand{LeadID: c.Param("id")}
	result, err := commands.Dispatch[leadsapp.QuoteLeadCommand, *leadsapp.QuoteLeadResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		statusForError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"priced": result.Priced,
		"lead":   dto.MapLeadDetail(result.Lead),
	})
}

type previewQuoteRequest struct {
	People int `json:"people"`
	leadDetailsRequest
}

func (h LeadHandler) Preview(c *gin.Context) {
	var req previewQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	transient := domainleads.Lead{People: req.People}
	req.toDetails().Apply(&transient)
	cmd := leadsapp.PreviewQuoteCommand{Lead: transient}
	result, err := commands.Dispatch[leadsapp.PreviewQuoteCommand, *pricing.Result](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		statusForError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapCalculation(*result))
}

func statusForError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainleads.ErrLeadNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domainleads.ErrUnknownStage),
		errors.Is(err, domainleads.ErrMalformedDates),
		errors.Is(err, domainleads.ErrNameRequired),
		errors.Is(err, domainleads.ErrInvalidPeople):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

var _ LeadHTTP = LeadHandler{}
