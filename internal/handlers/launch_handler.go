package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"adlaunch/internal/interfaces"
	"adlaunch/internal/launcher"
	"adlaunch/internal/middleware"
	"adlaunch/internal/models"
)

// StatusNoPageAvailable is returned when the token reaches no Facebook page.
// Non-standard on purpose: clients must be able to tell this terminal
// condition apart from an upstream 5xx worth retrying.
const StatusNoPageAvailable = 533

type LaunchHandler struct {
	launcher interfaces.CampaignLauncher
	validate *validator.Validate
	logger   *zap.Logger
}

func NewLaunchHandler(l interfaces.CampaignLauncher, logger *zap.Logger) *LaunchHandler {
	return &LaunchHandler{
		launcher: l,
		validate: validator.New(),
		logger:   logger,
	}
}

// LaunchCampaign godoc
// @Summary      Launch a campaign
// @Description  Creates the campaign, ad set, creative and ad on the Meta platform in one call. Failures past campaign creation roll the campaign back.
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Param        request body models.CampaignRequest true "Campaign request"
// @Success      200 {object} models.LaunchResult
// @Failure      400 {object} models.ErrorResponse
// @Failure      402 {object} models.ErrorResponse
// @Failure      422 {object} models.ErrorResponse
// @Failure      500 {object} models.ErrorResponse
// @Failure      502 {object} models.ErrorResponse
// @Router       /api/v1/campaigns/launch [post]
func (h *LaunchHandler) LaunchCampaign(w http.ResponseWriter, r *http.Request) {
	var req models.CampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONDetail(w, http.StatusUnprocessableEntity, "error in request body: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeJSONDetail(w, http.StatusUnprocessableEntity, "error in request body: "+err.Error())
		return
	}

	launchID := uuid.New().String()
	logger := h.logger.With(
		zap.String("launch_id", launchID),
		zap.String("account_id", req.AccountID),
	)
	if userID, ok := r.Context().Value(middleware.CtxUserID).(string); ok && userID != "" {
		logger = logger.With(zap.String("user_id", userID))
	}
	logger.Info("campaign launch requested", zap.String("campaign_name", req.CampaignName))

	result, err := h.launcher.Launch(r.Context(), launchID, &req)
	if err != nil {
		status, detail := launchErrorStatus(err)
		logger.Warn("campaign launch answered with error", zap.Int("status", status))
		writeJSONDetail(w, status, detail)
		return
	}

	result.LaunchID = launchID
	writeJSON(w, http.StatusOK, result)
}

// launchErrorStatus maps pipeline errors onto the API surface. Platform
// rejections come back as 400 with the platform's message; transport
// problems come back as 502 with only the stage named.
func launchErrorStatus(err error) (int, string) {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Error()
	}
	var fe *launcher.FundsError
	if errors.As(err, &fe) {
		return http.StatusPaymentRequired, fe.Error()
	}
	var pe *launcher.NoPageError
	if errors.As(err, &pe) {
		return StatusNoPageAvailable, pe.Error()
	}
	var ue *launcher.UpstreamError
	if errors.As(err, &ue) {
		if errors.Is(err, interfaces.ErrMalformedResponse) {
			return http.StatusInternalServerError, "internal server error"
		}
		var ge *interfaces.GraphError
		if errors.As(err, &ge) && ge.Platform() {
			return http.StatusBadRequest, ue.Detail()
		}
		return http.StatusBadGateway, ue.Detail()
	}
	return http.StatusInternalServerError, "internal server error"
}
