package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tisa/internal/jalali"
	"tisa/internal/ledger/audit"
	"tisa/internal/ledger/models"
	"tisa/internal/ledger/store"
)

type capturingNotifier struct {
	messages []string
}

func (n *capturingNotifier) Send(ctx context.Context, cfg models.TelegramConfig, text string) {
	if !cfg.CanSend() {
		return
	}
	n.messages = append(n.messages, text)
}

type fixture struct {
	store    *store.MemoryStore
	notifier *capturingNotifier
	svc      *Service
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	now := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	st := store.NewMemoryStore()
	n := &capturingNotifier{}
	ids := 0
	svc := New(st, audit.New(st), n,
		WithNowFunc(func() time.Time { return now }),
		WithIDFunc(func() string { ids++; return fmt.Sprintf("check-%d", ids) }),
	)
	return &fixture{store: st, notifier: n, svc: svc, now: now}
}

func (f *fixture) activateNotifications(t *testing.T) models.TelegramConfig {
	t.Helper()
	cfg := models.DefaultTelegramConfig()
	cfg.IsActive = true
	cfg.BotToken = "123:abc"
	cfg.ChatID = "42"
	require.NoError(t, f.store.SaveConfig(context.Background(), cfg))
	return cfg
}

func pendingCheck(due time.Time) models.Check {
	return models.Check{
		Amount:      500000000,
		DueDate:     due,
		Issuer:      "علی رضایی",
		BankName:    "بانک ملت",
		CheckNumber: "100200",
		SayadID:     "1234567890123456",
		Status:      models.StatusPending,
	}
}

func TestSaveCreatePath(t *testing.T) {
	f := newFixture(t)
	f.activateNotifications(t)
	ctx := context.Background()

	saved, err := f.svc.Save(ctx, pendingCheck(f.now.Add(24*time.Hour)))
	require.NoError(t, err)
	require.Equal(t, "check-1", saved.ID)
	require.Equal(t, models.StatusPending, saved.Status)
	require.True(t, saved.CreatedAt.Equal(f.now))
	require.True(t, saved.UpdatedAt.Equal(f.now))

	checks, err := f.store.LoadChecks(ctx)
	require.NoError(t, err)
	require.Len(t, checks, 1)

	logs, err := f.store.LoadLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, models.ActionCreate, logs[0].Action)
	require.Equal(t, "check-1", logs[0].CheckID)

	require.Len(t, f.notifier.messages, 1)
	msg := f.notifier.messages[0]
	require.Contains(t, msg, "ثبت چک جدید")
	require.Contains(t, msg, "علی رضایی")
	require.Contains(t, msg, jalali.FormatRial(500000000))
	require.Contains(t, msg, "<code>1234567890123456</code>")
}

func TestSaveCreateWithoutNotifyOnCreate(t *testing.T) {
	f := newFixture(t)
	cfg := f.activateNotifications(t)
	cfg.NotifyOnCreate = false
	require.NoError(t, f.store.SaveConfig(context.Background(), cfg))

	_, err := f.svc.Save(context.Background(), pendingCheck(f.now))
	require.NoError(t, err)
	require.Empty(t, f.notifier.messages)

	logs, err := f.store.LoadLogs(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 1, "audit entry is written regardless of notification gating")
}

func TestSaveUpdatePreservesCreatedAt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	saved, err := f.svc.Save(ctx, pendingCheck(f.now))
	require.NoError(t, err)

	later := f.now.Add(2 * time.Hour)
	f.svc.now = func() time.Time { return later }

	saved.Description = "اصلاح شرح"
	saved.CreatedAt = later.Add(time.Hour) // caller-supplied bookkeeping is ignored
	updated, err := f.svc.Save(ctx, saved)
	require.NoError(t, err)

	require.True(t, updated.CreatedAt.Equal(f.now), "createdAt is immutable")
	require.True(t, updated.UpdatedAt.Equal(later), "updatedAt refreshed on every mutation")

	checks, err := f.store.LoadChecks(ctx)
	require.NoError(t, err)
	require.Len(t, checks, 1, "update replaces in place, no duplicate")

	logs, err := f.store.LoadLogs(ctx)
	require.NoError(t, err)
	require.Equal(t, models.ActionEdit, logs[0].Action)
}

func TestSaveUniqueIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := f.svc.Save(ctx, pendingCheck(f.now))
		require.NoError(t, err)
	}

	checks, err := f.store.LoadChecks(ctx)
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, c := range checks {
		require.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
	}
}

func TestStatusChangeNotification(t *testing.T) {
	f := newFixture(t)
	f.activateNotifications(t)
	ctx := context.Background()

	saved, err := f.svc.Save(ctx, pendingCheck(f.now.Add(24*time.Hour)))
	require.NoError(t, err)
	f.notifier.messages = nil

	updated, err := f.svc.ChangeStatus(ctx, saved.ID, models.StatusBounced)
	require.NoError(t, err)
	require.Equal(t, models.StatusBounced, updated.Status)
	require.Len(t, f.notifier.messages, 1)
	require.Contains(t, f.notifier.messages[0], "تغییر وضعیت چک")
	require.Contains(t, f.notifier.messages[0], string(models.StatusBounced))

	// Same-status overwrite fires no further notification.
	f.notifier.messages = nil
	_, err = f.svc.ChangeStatus(ctx, saved.ID, models.StatusBounced)
	require.NoError(t, err)
	require.Empty(t, f.notifier.messages)

	logs, err := f.store.LoadLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 3, "every mutation writes exactly one audit entry")
}

func TestStatusChangeNotificationDisabled(t *testing.T) {
	f := newFixture(t)
	cfg := f.activateNotifications(t)
	cfg.NotifyOnStatusChange = false
	require.NoError(t, f.store.SaveConfig(context.Background(), cfg))
	ctx := context.Background()

	saved, err := f.svc.Save(ctx, pendingCheck(f.now))
	require.NoError(t, err)
	f.notifier.messages = nil

	_, err = f.svc.ChangeStatus(ctx, saved.ID, models.StatusPaid)
	require.NoError(t, err)
	require.Empty(t, f.notifier.messages)
}

func TestChangeStatusUnknownID(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ChangeStatus(context.Background(), "missing", models.StatusPaid)
	require.ErrorIs(t, err, ErrCheckNotFound)
}

func TestDeleteExisting(t *testing.T) {
	f := newFixture(t)
	f.activateNotifications(t)
	ctx := context.Background()

	saved, err := f.svc.Save(ctx, pendingCheck(f.now))
	require.NoError(t, err)
	f.notifier.messages = nil

	require.NoError(t, f.svc.Delete(ctx, saved.ID))

	checks, err := f.store.LoadChecks(ctx)
	require.NoError(t, err)
	require.Empty(t, checks)

	logs, err := f.store.LoadLogs(ctx)
	require.NoError(t, err)
	require.Equal(t, models.ActionDelete, logs[0].Action)

	require.Len(t, f.notifier.messages, 1)
	require.Contains(t, f.notifier.messages[0], "حذف سند مالی")
	require.Contains(t, f.notifier.messages[0], saved.Issuer)
}

func TestDeleteNonexistent(t *testing.T) {
	f := newFixture(t)
	f.activateNotifications(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Delete(ctx, "missing"))

	logs, err := f.store.LoadLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1, "delete audit entry is written even when the record was absent")
	require.Equal(t, models.ActionDelete, logs[0].Action)

	require.Empty(t, f.notifier.messages, "no notification when the record was not found")
}

func TestScanRemindersExactness(t *testing.T) {
	f := newFixture(t)
	cfg := f.activateNotifications(t)
	require.Equal(t, 1, cfg.NotifyDaysBefore)
	ctx := context.Background()

	day := 24 * time.Hour
	for _, due := range []time.Time{
		f.now,              // due today: daysUntil 0
		f.now.Add(day),     // exactly one day out -> reminder
		f.now.Add(2 * day), // one extra day: no retrigger
	} {
		_, err := f.svc.Save(ctx, pendingCheck(due))
		require.NoError(t, err)
	}
	paid := pendingCheck(f.now.Add(day))
	paid.Status = models.StatusPaid
	_, err := f.svc.Save(ctx, paid)
	require.NoError(t, err)

	f.notifier.messages = nil
	logsBefore, err := f.store.LoadLogs(ctx)
	require.NoError(t, err)

	dispatched, err := f.svc.ScanReminders(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, dispatched)
	require.Len(t, f.notifier.messages, 1)
	require.Contains(t, f.notifier.messages[0], "یادآوری سررسید چک")
	require.Contains(t, f.notifier.messages[0], "بانک ملت")

	logsAfter, err := f.store.LoadLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logsAfter, len(logsBefore), "the sweep writes no audit entries")
}

func TestScanRemindersInactiveConfig(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Save(ctx, pendingCheck(f.now.Add(24*time.Hour)))
	require.NoError(t, err)
	f.notifier.messages = nil

	dispatched, err := f.svc.ScanReminders(ctx)
	require.NoError(t, err)
	require.Zero(t, dispatched)
	require.Empty(t, f.notifier.messages)
}

func TestAuditLogNeverExceedsCap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		saved, err := f.svc.Save(ctx, pendingCheck(f.now))
		require.NoError(t, err)
		_, err = f.svc.ChangeStatus(ctx, saved.ID, models.StatusPaid)
		require.NoError(t, err)
		require.NoError(t, f.svc.Delete(ctx, saved.ID))
	}

	logs, err := f.store.LoadLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, models.AuditLogCap)
}

func TestScenarioCreateBigCheck(t *testing.T) {
	f := newFixture(t)
	f.activateNotifications(t)
	ctx := context.Background()

	c := pendingCheck(f.now.Add(24 * time.Hour))
	c.Amount = 500000000
	require.NoError(t, c.Validate())

	saved, err := f.svc.Save(ctx, c)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	checks, _ := f.store.LoadChecks(ctx)
	logs, _ := f.store.LoadLogs(ctx)
	require.Len(t, checks, 1)
	require.Len(t, logs, 1)
	require.Equal(t, models.ActionCreate, logs[0].Action)
	require.Len(t, f.notifier.messages, 1)
	require.Contains(t, f.notifier.messages[0], c.Issuer)
	require.Contains(t, f.notifier.messages[0], jalali.FormatRial(c.Amount))
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	day := 24 * time.Hour

	mk := func(status models.CheckStatus, amount int64, due time.Time) {
		c := pendingCheck(due)
		c.Status = status
		c.Amount = amount
		_, err := f.svc.Save(ctx, c)
		require.NoError(t, err)
	}

	mk(models.StatusPending, 100, f.now.Add(3*day))
	mk(models.StatusPending, 200, f.now.Add(day))
	mk(models.StatusPending, 50, f.now.Add(-day)) // overdue: counted, not upcoming
	mk(models.StatusPaid, 300, f.now)
	mk(models.StatusBounced, 400, f.now)

	st, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, st.Total)
	require.Equal(t, 3, st.Pending)
	require.Equal(t, int64(350), st.PendingAmount)
	require.Equal(t, 1, st.Paid)
	require.Equal(t, 1, st.Bounced)
	require.Len(t, st.Upcoming, 2)
	require.Equal(t, int64(200), st.Upcoming[0].Amount, "soonest due first")
}

func TestMessagesUseLocalizedDates(t *testing.T) {
	f := newFixture(t)
	f.activateNotifications(t)

	due := jalali.ToGregorian(1403, 4, 15)
	c := pendingCheck(due)
	_, err := f.svc.Save(context.Background(), c)
	require.NoError(t, err)

	require.Len(t, f.notifier.messages, 1)
	if !strings.Contains(f.notifier.messages[0], "تیر") {
		t.Fatalf("expected Jalali month name in message: %q", f.notifier.messages[0])
	}
}
