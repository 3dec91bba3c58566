package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-cv-tailor/internal/adapter"
	"github.com/MKhiriev/go-cv-tailor/internal/config"
	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/internal/mock"
	"github.com/MKhiriev/go-cv-tailor/internal/store"
	"github.com/MKhiriev/go-cv-tailor/internal/throttle"
	"github.com/MKhiriev/go-cv-tailor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestTailorSvc — хелпер для создания clientTailorService с моками
func newTestTailorSvc(
	t *testing.T,
	ctrl *gomock.Controller,
	cfg config.ClientThrottle,
) (
	*clientTailorService,
	*mock.MockLocalLedgerRepository,
	*mock.MockServerAdapter,
	*mock.MockTailorAdapter,
) {
	t.Helper()
	mockLedger := mock.NewMockLocalLedgerRepository(ctrl)
	mockServer := mock.NewMockServerAdapter(ctrl)
	mockTailor := mock.NewMockTailorAdapter(ctrl)

	storages := &store.ClientStorages{LedgerRepository: mockLedger}

	svc := NewClientTailorService(storages, mockServer, mockTailor, cfg, logger.NewClientLogger("test")).(*clientTailorService)

	return svc, mockLedger, mockServer, mockTailor
}

// defaultThrottleCfg is wide open so tests exercise the pipeline without
// tripping admission control unless they mean to.
func defaultThrottleCfg() config.ClientThrottle {
	return config.ClientThrottle{MaxCallsPerMinute: 6, MinCallSpacing: 0, GenerationCooldown: 0}
}

func balance(available, used, earned int64) models.CreditBalance {
	return models.CreditBalance{Available: available, Used: used, TotalEarned: earned}
}

// ── Generate: happy path ─────────────────────────────────────────────────────

func TestClientTailorService_Generate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockLedger, mockServer, mockTailor := newTestTailorSvc(t, ctrl, defaultThrottleCfg())
	ctx := context.Background()

	want := models.GenerateResponse{TailoredResume: "tailored text", CreditsRemaining: 2}

	gomock.InOrder(
		mockLedger.EXPECT().LastGeneration(ctx).Return(time.Time{}, nil),
		mockLedger.EXPECT().GetBalance(ctx).Return(balance(3, 0, 3), nil),
		mockLedger.EXPECT().Spend(ctx).Return(balance(2, 1, 3), nil),
		mockServer.EXPECT().SpendCredit(ctx).Return(balance(2, 1, 3), nil),
		mockLedger.EXPECT().Overwrite(ctx, balance(2, 1, 3)).Return(nil),
		mockLedger.EXPECT().SetLastGeneration(ctx, gomock.Any()).Return(nil),
		mockTailor.EXPECT().GenerateFromText(ctx, models.GenerateRequest{
			ResumeText:     "my resume",
			JobDescription: "the job",
		}).Return(want, nil),
	)

	got, err := svc.Generate(ctx, "my resume", "the job")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestClientTailorService_GenerateFromFile_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockLedger, mockServer, mockTailor := newTestTailorSvc(t, ctrl, defaultThrottleCfg())
	ctx := context.Background()

	want := models.GenerateResponse{TailoredResume: "from file"}

	gomock.InOrder(
		mockLedger.EXPECT().LastGeneration(ctx).Return(time.Time{}, nil),
		mockLedger.EXPECT().GetBalance(ctx).Return(balance(1, 2, 3), nil),
		mockLedger.EXPECT().Spend(ctx).Return(balance(0, 3, 3), nil),
		mockServer.EXPECT().SpendCredit(ctx).Return(balance(0, 3, 3), nil),
		mockLedger.EXPECT().Overwrite(ctx, balance(0, 3, 3)).Return(nil),
		mockLedger.EXPECT().SetLastGeneration(ctx, gomock.Any()).Return(nil),
		mockTailor.EXPECT().GenerateFromFile(ctx, models.GenerateFileRequest{
			FilePath:       "/tmp/resume.pdf",
			JobDescription: "the job",
		}).Return(want, nil),
	)

	got, err := svc.GenerateFromFile(ctx, "/tmp/resume.pdf", "the job")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestClientTailorService_Generate_EmptyInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestTailorSvc(t, ctrl, defaultThrottleCfg())
	ctx := context.Background()

	_, err := svc.Generate(ctx, "", "the job")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Generate(ctx, "my resume", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.GenerateFromFile(ctx, "", "the job")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── Generate: admission control ──────────────────────────────────────────────

func TestClientTailorService_Generate_ThrottledWhenWindowExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := defaultThrottleCfg()
	cfg.MaxCallsPerMinute = 1
	svc, mockLedger, mockServer, mockTailor := newTestTailorSvc(t, ctrl, cfg)
	ctx := context.Background()

	gomock.InOrder(
		mockLedger.EXPECT().LastGeneration(ctx).Return(time.Time{}, nil),
		mockLedger.EXPECT().GetBalance(ctx).Return(balance(3, 0, 3), nil),
		mockLedger.EXPECT().Spend(ctx).Return(balance(2, 1, 3), nil),
		mockServer.EXPECT().SpendCredit(ctx).Return(balance(2, 1, 3), nil),
		mockLedger.EXPECT().Overwrite(ctx, balance(2, 1, 3)).Return(nil),
		mockLedger.EXPECT().SetLastGeneration(ctx, gomock.Any()).Return(nil),
		mockTailor.EXPECT().GenerateFromText(ctx, gomock.Any()).Return(models.GenerateResponse{TailoredResume: "ok"}, nil),
	)

	_, err := svc.Generate(ctx, "my resume", "the job")
	require.NoError(t, err)

	// второй вызов отбивается локально, без единого обращения к мокам
	_, err = svc.Generate(ctx, "my resume", "the job")
	var throttled *ThrottledError
	require.ErrorAs(t, err, &throttled)
	assert.Greater(t, throttled.Wait, time.Duration(0))
}

func TestClientTailorService_Generate_ThrottledByMinSpacing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := defaultThrottleCfg()
	cfg.MinCallSpacing = 5 * time.Second
	svc, _, _, _ := newTestTailorSvc(t, ctrl, cfg)
	ctx := context.Background()

	// имитируем только что отправленный вызов
	svc.limiter.Record()

	_, err := svc.Generate(ctx, "my resume", "the job")
	var throttled *ThrottledError
	require.ErrorAs(t, err, &throttled)
	assert.Greater(t, throttled.Wait, time.Duration(0))
	assert.LessOrEqual(t, throttled.Wait, 5*time.Second)
}

func TestClientTailorService_Generate_CooldownActive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := defaultThrottleCfg()
	cfg.GenerationCooldown = time.Hour
	svc, mockLedger, _, _ := newTestTailorSvc(t, ctrl, cfg)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	mockLedger.EXPECT().LastGeneration(ctx).Return(now.Add(-10*time.Minute), nil)

	_, err := svc.Generate(ctx, "my resume", "the job")
	var cooldown *CooldownError
	require.ErrorAs(t, err, &cooldown)
	assert.Equal(t, 50*time.Minute, cooldown.Remaining)
}

func TestClientTailorService_Generate_CooldownElapsed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := defaultThrottleCfg()
	cfg.GenerationCooldown = time.Hour
	svc, mockLedger, mockServer, mockTailor := newTestTailorSvc(t, ctrl, cfg)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	gomock.InOrder(
		mockLedger.EXPECT().LastGeneration(ctx).Return(now.Add(-2*time.Hour), nil),
		mockLedger.EXPECT().GetBalance(ctx).Return(balance(3, 0, 3), nil),
		mockLedger.EXPECT().Spend(ctx).Return(balance(2, 1, 3), nil),
		mockServer.EXPECT().SpendCredit(ctx).Return(balance(2, 1, 3), nil),
		mockLedger.EXPECT().Overwrite(ctx, balance(2, 1, 3)).Return(nil),
		mockLedger.EXPECT().SetLastGeneration(ctx, now).Return(nil),
		mockTailor.EXPECT().GenerateFromText(ctx, gomock.Any()).Return(models.GenerateResponse{TailoredResume: "ok"}, nil),
	)

	_, err := svc.Generate(ctx, "my resume", "the job")
	require.NoError(t, err)
}

// ── Generate: credit spend ───────────────────────────────────────────────────

func TestClientTailorService_Generate_FirstRunSeedsLedgerFromServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockLedger, mockServer, mockTailor := newTestTailorSvc(t, ctrl, defaultThrottleCfg())
	ctx := context.Background()

	gomock.InOrder(
		mockLedger.EXPECT().LastGeneration(ctx).Return(time.Time{}, nil),
		mockLedger.EXPECT().GetBalance(ctx).Return(models.CreditBalance{}, store.ErrLedgerNotInitialized),
		mockServer.EXPECT().GetBalance(ctx).Return(balance(3, 0, 3), nil),
		mockLedger.EXPECT().Overwrite(ctx, balance(3, 0, 3)).Return(nil),
		mockLedger.EXPECT().Spend(ctx).Return(balance(2, 1, 3), nil),
		mockServer.EXPECT().SpendCredit(ctx).Return(balance(2, 1, 3), nil),
		mockLedger.EXPECT().Overwrite(ctx, balance(2, 1, 3)).Return(nil),
		mockLedger.EXPECT().SetLastGeneration(ctx, gomock.Any()).Return(nil),
		mockTailor.EXPECT().GenerateFromText(ctx, gomock.Any()).Return(models.GenerateResponse{TailoredResume: "ok"}, nil),
	)

	_, err := svc.Generate(ctx, "my resume", "the job")
	require.NoError(t, err)
}

func TestClientTailorService_Generate_InsufficientBalanceEvenAfterResync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockLedger, mockServer, _ := newTestTailorSvc(t, ctrl, defaultThrottleCfg())
	ctx := context.Background()

	gomock.InOrder(
		mockLedger.EXPECT().LastGeneration(ctx).Return(time.Time{}, nil),
		mockLedger.EXPECT().GetBalance(ctx).Return(balance(0, 3, 3), nil),
		mockLedger.EXPECT().Spend(ctx).Return(models.CreditBalance{}, store.ErrInsufficientBalance),
		// зеркало могло устареть, сверяемся с сервером
		mockServer.EXPECT().GetBalance(ctx).Return(balance(0, 3, 3), nil),
		mockLedger.EXPECT().Overwrite(ctx, balance(0, 3, 3)).Return(nil),
	)

	_, err := svc.Generate(ctx, "my resume", "the job")
	assert.ErrorIs(t, err, store.ErrInsufficientBalance)
}

func TestClientTailorService_Generate_StaleMirrorResyncFindsCredits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockLedger, mockServer, mockTailor := newTestTailorSvc(t, ctrl, defaultThrottleCfg())
	ctx := context.Background()

	// credits bought from another device: local mirror says zero, server says 8
	gomock.InOrder(
		mockLedger.EXPECT().LastGeneration(ctx).Return(time.Time{}, nil),
		mockLedger.EXPECT().GetBalance(ctx).Return(balance(0, 3, 3), nil),
		mockLedger.EXPECT().Spend(ctx).Return(models.CreditBalance{}, store.ErrInsufficientBalance),
		mockServer.EXPECT().GetBalance(ctx).Return(balance(8, 3, 11), nil),
		mockLedger.EXPECT().Overwrite(ctx, balance(8, 3, 11)).Return(nil),
		mockLedger.EXPECT().Spend(ctx).Return(balance(7, 4, 11), nil),
		mockServer.EXPECT().SpendCredit(ctx).Return(balance(7, 4, 11), nil),
		mockLedger.EXPECT().Overwrite(ctx, balance(7, 4, 11)).Return(nil),
		mockLedger.EXPECT().SetLastGeneration(ctx, gomock.Any()).Return(nil),
		mockTailor.EXPECT().GenerateFromText(ctx, gomock.Any()).Return(models.GenerateResponse{TailoredResume: "ok"}, nil),
	)

	_, err := svc.Generate(ctx, "my resume", "the job")
	require.NoError(t, err)
}

func TestClientTailorService_Generate_ServerRejectsSpend_RollsBackMirror(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockLedger, mockServer, _ := newTestTailorSvc(t, ctrl, defaultThrottleCfg())
	ctx := context.Background()

	before := balance(1, 2, 3)

	gomock.InOrder(
		mockLedger.EXPECT().LastGeneration(ctx).Return(time.Time{}, nil),
		mockLedger.EXPECT().GetBalance(ctx).Return(before, nil),
		mockLedger.EXPECT().Spend(ctx).Return(balance(0, 3, 3), nil),
		mockServer.EXPECT().SpendCredit(ctx).Return(models.CreditBalance{}, adapter.ErrInsufficientCredits),
		// оптимистичное списание откатывается до состояния before
		mockLedger.EXPECT().Overwrite(ctx, before).Return(nil),
		mockServer.EXPECT().GetBalance(ctx).Return(balance(0, 3, 3), nil),
		mockLedger.EXPECT().Overwrite(ctx, balance(0, 3, 3)).Return(nil),
	)

	_, err := svc.Generate(ctx, "my resume", "the job")
	assert.ErrorIs(t, err, adapter.ErrInsufficientCredits)
}

func TestClientTailorService_Generate_ServerSpendTransportError_RollsBackMirror(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockLedger, mockServer, _ := newTestTailorSvc(t, ctrl, defaultThrottleCfg())
	ctx := context.Background()

	before := balance(2, 1, 3)
	transportErr := errors.New("connection refused")

	gomock.InOrder(
		mockLedger.EXPECT().LastGeneration(ctx).Return(time.Time{}, nil),
		mockLedger.EXPECT().GetBalance(ctx).Return(before, nil),
		mockLedger.EXPECT().Spend(ctx).Return(balance(1, 2, 3), nil),
		mockServer.EXPECT().SpendCredit(ctx).Return(models.CreditBalance{}, transportErr),
		mockLedger.EXPECT().Overwrite(ctx, before).Return(nil),
	)

	_, err := svc.Generate(ctx, "my resume", "the job")
	assert.ErrorIs(t, err, transportErr)
}

// ── Generate: backend failures after the spend ───────────────────────────────

func TestClientTailorService_Generate_BackendRateLimitedAfterSpend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockLedger, mockServer, mockTailor := newTestTailorSvc(t, ctrl, defaultThrottleCfg())
	// без ожиданий между попытками
	svc.retrier = throttle.NewRetrier(0)
	ctx := context.Background()

	gomock.InOrder(
		mockLedger.EXPECT().LastGeneration(ctx).Return(time.Time{}, nil),
		mockLedger.EXPECT().GetBalance(ctx).Return(balance(3, 0, 3), nil),
		mockLedger.EXPECT().Spend(ctx).Return(balance(2, 1, 3), nil),
		mockServer.EXPECT().SpendCredit(ctx).Return(balance(2, 1, 3), nil),
		mockLedger.EXPECT().Overwrite(ctx, balance(2, 1, 3)).Return(nil),
		mockLedger.EXPECT().SetLastGeneration(ctx, gomock.Any()).Return(nil),
		mockTailor.EXPECT().GenerateFromText(ctx, gomock.Any()).
			Return(models.GenerateResponse{}, throttle.NewHTTPError(http.StatusTooManyRequests, "")),
	)

	// кредит уже списан на сервере, возврата нет
	_, err := svc.Generate(ctx, "my resume", "the job")
	assert.ErrorIs(t, err, throttle.ErrRateLimited)
}

func TestClientTailorService_Generate_BackendClientErrorNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockLedger, mockServer, mockTailor := newTestTailorSvc(t, ctrl, defaultThrottleCfg())
	ctx := context.Background()

	gomock.InOrder(
		mockLedger.EXPECT().LastGeneration(ctx).Return(time.Time{}, nil),
		mockLedger.EXPECT().GetBalance(ctx).Return(balance(3, 0, 3), nil),
		mockLedger.EXPECT().Spend(ctx).Return(balance(2, 1, 3), nil),
		mockServer.EXPECT().SpendCredit(ctx).Return(balance(2, 1, 3), nil),
		mockLedger.EXPECT().Overwrite(ctx, balance(2, 1, 3)).Return(nil),
		mockLedger.EXPECT().SetLastGeneration(ctx, gomock.Any()).Return(nil),
		// ровно один вызов: ошибки 4xx не ретраятся
		mockTailor.EXPECT().GenerateFromText(ctx, gomock.Any()).
			Return(models.GenerateResponse{}, throttle.NewHTTPError(http.StatusBadRequest, "resume too long")).
			Times(1),
	)

	_, err := svc.Generate(ctx, "my resume", "the job")
	require.Error(t, err)
	assert.True(t, throttle.IsStatus(err, http.StatusBadRequest))
}

func TestClientTailorService_Generate_BackendUnreachableAfterSpend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockLedger, mockServer, mockTailor := newTestTailorSvc(t, ctrl, defaultThrottleCfg())
	svc.retrier = throttle.NewRetrier(0)
	ctx := context.Background()

	gomock.InOrder(
		mockLedger.EXPECT().LastGeneration(ctx).Return(time.Time{}, nil),
		mockLedger.EXPECT().GetBalance(ctx).Return(balance(3, 0, 3), nil),
		mockLedger.EXPECT().Spend(ctx).Return(balance(2, 1, 3), nil),
		mockServer.EXPECT().SpendCredit(ctx).Return(balance(2, 1, 3), nil),
		mockLedger.EXPECT().Overwrite(ctx, balance(2, 1, 3)).Return(nil),
		mockLedger.EXPECT().SetLastGeneration(ctx, gomock.Any()).Return(nil),
		mockTailor.EXPECT().GenerateFromText(ctx, gomock.Any()).
			Return(models.GenerateResponse{}, errors.New("dial tcp: connection refused")),
	)

	_, err := svc.Generate(ctx, "my resume", "the job")
	assert.ErrorIs(t, err, throttle.ErrServiceUnavailable)
}

// Бюджет повторов: одна дополнительная попытка, максимум два вызова бэкенда
// на одну генерацию.
func TestClientTailorService_Generate_RetryBudget(t *testing.T) {
	assert.Equal(t, 1, maxGenerationRetries)
}

// ── Spend until exhausted ────────────────────────────────────────────────────

func TestClientTailorService_Generate_SpendsUntilExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockLedger, mockServer, mockTailor := newTestTailorSvc(t, ctrl, defaultThrottleCfg())
	ctx := context.Background()

	// три успешные генерации съедают стартовый баланс 3
	for i := int64(0); i < 3; i++ {
		after := balance(2-i, i+1, 3)
		gomock.InOrder(
			mockLedger.EXPECT().LastGeneration(ctx).Return(time.Time{}, nil),
			mockLedger.EXPECT().GetBalance(ctx).Return(balance(3-i, i, 3), nil),
			mockLedger.EXPECT().Spend(ctx).Return(after, nil),
			mockServer.EXPECT().SpendCredit(ctx).Return(after, nil),
			mockLedger.EXPECT().Overwrite(ctx, after).Return(nil),
			mockLedger.EXPECT().SetLastGeneration(ctx, gomock.Any()).Return(nil),
			mockTailor.EXPECT().GenerateFromText(ctx, gomock.Any()).Return(models.GenerateResponse{TailoredResume: "ok"}, nil),
		)
	}

	// четвёртая отбивается локально ещё до запроса к бэкенду
	gomock.InOrder(
		mockLedger.EXPECT().LastGeneration(ctx).Return(time.Time{}, nil),
		mockLedger.EXPECT().GetBalance(ctx).Return(balance(0, 3, 3), nil),
		mockLedger.EXPECT().Spend(ctx).Return(models.CreditBalance{}, store.ErrInsufficientBalance),
		mockServer.EXPECT().GetBalance(ctx).Return(balance(0, 3, 3), nil),
		mockLedger.EXPECT().Overwrite(ctx, balance(0, 3, 3)).Return(nil),
	)

	for i := 0; i < 3; i++ {
		_, err := svc.Generate(ctx, "my resume", "the job")
		require.NoError(t, err)
	}

	_, err := svc.Generate(ctx, "my resume", "the job")
	assert.ErrorIs(t, err, store.ErrInsufficientBalance)
}

// ── Probe ────────────────────────────────────────────────────────────────────

func TestClientTailorService_Probe_BypassesAdmission(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := defaultThrottleCfg()
	cfg.MaxCallsPerMinute = 1
	svc, _, _, mockTailor := newTestTailorSvc(t, ctrl, cfg)
	ctx := context.Background()

	svc.limiter.Record()

	mockTailor.EXPECT().Probe(ctx).Return(nil)
	require.NoError(t, svc.Probe(ctx))
}
