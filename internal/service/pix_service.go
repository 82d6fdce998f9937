package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"gw-eternal-pay/internal/custom_err"
	"gw-eternal-pay/internal/models"
	"gw-eternal-pay/internal/pix_client"

	"github.com/go-playground/validator/v10"
)

type Pix interface {
	BRCode(ctx context.Context, req models.BRCodeRequest) (json.RawMessage, error)
}

type PixService struct {
	generator pix_client.BRCodeGenerator
	validate  *validator.Validate
	log       *slog.Logger
}

func NewPixService(generator pix_client.BRCodeGenerator, log *slog.Logger) *PixService {
	return &PixService{
		generator: generator,
		validate:  newValidator(),
		log:       log,
	}
}

func (s *PixService) BRCode(ctx context.Context, req models.BRCodeRequest) (json.RawMessage, error) {
	const op = "service.BRCode"

	req.Name = strings.TrimSpace(req.Name)
	req.City = strings.TrimSpace(req.City)
	req.Key = strings.TrimSpace(req.Key)
	req.Reference = strings.TrimSpace(req.Reference)

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", custom_err.ErrMissingPixParam, validationError(err))
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%s: %w", op, custom_err.ErrInvalidAmount)
	}

	body, err := s.generator.GenerateBRCode(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("pix br code сгенерирован",
		slog.String("op", op),
		slog.String("txid", req.Reference),
		slog.String("amount", req.Amount.StringFixed(2)))
	return body, nil
}
