package contact

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/joshu-sajeev/contactrelay/common"
	"github.com/joshu-sajeev/contactrelay/internal/config"
	"github.com/joshu-sajeev/contactrelay/internal/dto"
	"github.com/joshu-sajeev/contactrelay/internal/models"
	"github.com/joshu-sajeev/contactrelay/internal/provider"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// recordTimeout bounds the audit insert once the provider call is done.
const recordTimeout = 5 * time.Second

type RelayService struct {
	sender   provider.Sender
	recorder SubmissionRecorder
	cfg      *config.Config
	log      *zap.Logger
}

func NewRelayService(sender provider.Sender, recorder SubmissionRecorder, cfg *config.Config, log *zap.Logger) *RelayService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RelayService{
		sender:   sender,
		recorder: recorder,
		cfg:      cfg,
		log:      log,
	}
}

var _ ContactServiceInterface = (*RelayService)(nil)

// Send validates req, hands the rendered message to the provider and maps
// the outcome onto the HTTP contract. There is exactly one provider call per
// accepted submission.
func (s *RelayService) Send(ctx context.Context, req *dto.ContactRequest) (*dto.ContactResponse, error) {
	sub, err := Validate(req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingField):
			return nil, common.Errf(http.StatusBadRequest, "%s", config.MsgMissingField)
		case errors.Is(err, ErrInvalidEmail):
			return nil, common.Errf(http.StatusBadRequest, "%s", config.MsgInvalidEmail)
		default:
			return nil, s.unexpected(ctx, err)
		}
	}

	msg, err := BuildMessage(sub, s.cfg.From, s.cfg.To)
	if err != nil {
		return nil, s.unexpected(ctx, err)
	}

	sendCtx := ctx
	if s.cfg.ProviderTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, s.cfg.ProviderTimeout)
		defer cancel()
	}

	res, err := s.sender.Send(sendCtx, msg)
	if err != nil {
		apiErr := s.mapSendError(ctx, err)
		s.record(ctx, sub, config.SubmissionStatusFailed, "", apiErr.Status, err.Error())
		return nil, apiErr
	}

	s.log.Info("email sent",
		zap.String("provider", s.providerName()),
		zap.String("id", res.ID),
		zap.String("request_id", MetaFrom(ctx).RequestID),
	)
	s.record(ctx, sub, config.SubmissionStatusSent, res.ID, http.StatusOK, "")

	return &dto.ContactResponse{
		Success: true,
		Message: config.MsgEmailSent,
		ID:      res.ID,
	}, nil
}

// mapSendError turns a provider failure into the response the caller sees.
// Provider-described errors keep their status and message, everything else
// becomes the generic 500.
func (s *RelayService) mapSendError(ctx context.Context, err error) common.APIError {
	var perr *provider.Error
	if !errors.As(err, &perr) {
		return s.unexpected(ctx, err)
	}

	status := perr.StatusCode
	if status < http.StatusBadRequest || status > 599 {
		status = http.StatusInternalServerError
	}
	message := perr.Message
	if message == "" {
		message = config.MsgSendFailed
	}

	s.log.Warn("provider rejected email",
		zap.String("provider", s.providerName()),
		zap.Int("status", perr.StatusCode),
		zap.String("name", perr.Name),
		zap.String("message", perr.Message),
		zap.String("request_id", MetaFrom(ctx).RequestID),
	)

	return common.Errf(status, "%s", message)
}

func (s *RelayService) unexpected(ctx context.Context, err error) common.APIError {
	s.log.Error("error sending email",
		zap.String("provider", s.providerName()),
		zap.String("request_id", MetaFrom(ctx).RequestID),
		zap.Error(err),
	)

	apiErr := common.Errf(http.StatusInternalServerError, "%s", config.MsgSendFailed)
	if s.cfg.Development() {
		apiErr = apiErr.WithDetails(err.Error())
	}
	return apiErr
}

// record writes the audit row. Failures are logged and never reach the
// caller.
func (s *RelayService) record(ctx context.Context, sub Submission, status config.SubmissionStatus, providerID string, httpStatus int, errText string) {
	if s.recorder == nil {
		return
	}

	meta := MetaFrom(ctx)
	rawMeta, err := json.Marshal(meta)
	if err != nil {
		s.log.Warn("encode submission meta", zap.Error(err))
		rawMeta = nil
	}

	row := &models.Submission{
		RequestID:  meta.RequestID,
		Name:       sub.Name,
		Email:      sub.Email,
		Message:    sub.Message,
		Provider:   s.providerName(),
		Status:     string(status),
		ProviderID: providerID,
		HTTPStatus: httpStatus,
		Error:      errText,
		Meta:       datatypes.JSON(rawMeta),
	}

	recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if err := s.recorder.Create(recCtx, row); err != nil {
		s.log.Warn("failed to record submission",
			zap.String("request_id", meta.RequestID),
			zap.Error(err),
		)
	}
}

func (s *RelayService) providerName() string {
	if s.sender == nil {
		return ""
	}
	return s.sender.Name()
}
