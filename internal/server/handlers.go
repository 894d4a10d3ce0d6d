package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/go-agent-pipeline/pkg/pipeline"
	"github.com/askiada/go-agent-pipeline/pkg/pipeline/model"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// PromptRequest is the body of POST /prompt.
type PromptRequest struct {
	Q string `json:"q"`
}

// PromptResponse is the success body of POST /prompt.
type PromptResponse struct {
	RunID   string             `json:"run_id"`
	Result  string             `json:"result"`
	History []model.StepOutput `json:"history,omitempty"`
}

// ErrorResponse identifies which step failed and why. History carries the
// outputs produced before the failure when the server is configured to
// return them.
type ErrorResponse struct {
	Error     string             `json:"error"`
	StepIndex *int               `json:"step_index,omitempty"`
	StepName  string             `json:"step_name,omitempty"`
	History   []model.StepOutput `json:"history,omitempty"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handlePrompt(c echo.Context) error {
	var req PromptRequest

	err := c.Bind(&req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if strings.TrimSpace(req.Q) == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "q must be set"})
	}

	ctx := c.Request().Context()

	if s.config.RunTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, s.config.RunTimeout)
		defer cancel()
	}

	state, err := s.runner.Run(ctx, req.Q)
	if err != nil {
		return s.renderRunError(c, err)
	}

	resp := PromptResponse{
		RunID:  state.RunID,
		Result: state.FinalOutput(),
	}
	if s.config.IncludeHistory {
		resp.History = state.History
	}

	return c.JSON(http.StatusOK, resp)
}

func (s *Server) renderRunError(c echo.Context, err error) error {
	var stepErr *pipeline.StepError
	if errors.As(err, &stepErr) {
		s.logger.Warn("pipeline step failed",
			zap.Int("step_index", stepErr.Index),
			zap.String("step_name", stepErr.Name),
			zap.Error(err),
		)

		index := stepErr.Index
		resp := ErrorResponse{
			Error:     stepErr.Error(),
			StepIndex: &index,
			StepName:  stepErr.Name,
		}
		if s.config.IncludeHistory {
			resp.History = stepErr.History
		}

		return c.JSON(http.StatusBadGateway, resp)
	}

	var canceledErr *pipeline.CanceledError
	if errors.As(err, &canceledErr) {
		s.logger.Warn("pipeline run canceled", zap.Error(err))

		resp := ErrorResponse{Error: canceledErr.Error()}
		if s.config.IncludeHistory {
			resp.History = canceledErr.History
		}

		return c.JSON(http.StatusGatewayTimeout, resp)
	}

	s.logger.Error("pipeline run failed", zap.Error(err))

	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
