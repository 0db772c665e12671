// Package service implements the booking engine: draft persistence, price
// estimation, finalize with slot exclusivity, the status machine and the
// owner edit surface. Handlers stay thin; every business rule lives here.
package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "piqueunique/internal/bookings/errors"
	"piqueunique/internal/bookings/repository"
	"piqueunique/internal/bookings/validator"
	"piqueunique/internal/identity"
	"piqueunique/internal/notify"
	"piqueunique/internal/pricing"
	"piqueunique/pkg/config"
	apperrors "piqueunique/pkg/errors"
	"piqueunique/pkg/logger"
	"piqueunique/pkg/model"
	"piqueunique/pkg/sanitizer"
)

type BookingService struct {
	cfg       *config.Config
	bookings  repository.BookingRepository
	drafts    repository.DraftRepository
	slotLocks repository.SlotLockRepository
	validator *validator.BookingValidator
	audit     *AuditService
	notifier  notify.Notifier
	logger    *logger.Logger
}

func NewBookingService(
	cfg *config.Config,
	bookings repository.BookingRepository,
	drafts repository.DraftRepository,
	slotLocks repository.SlotLockRepository,
	v *validator.BookingValidator,
	audit *AuditService,
	notifier notify.Notifier,
	log *logger.Logger,
) *BookingService {
	return &BookingService{
		cfg:       cfg,
		bookings:  bookings,
		drafts:    drafts,
		slotLocks: slotLocks,
		validator: v,
		audit:     audit,
		notifier:  notifier,
		logger:    log,
	}
}

// SaveDraft upserts the caller's single in-progress draft. Supplied fields
// overwrite stored ones; omitted fields survive, so the frontend can save
// after every step of the booking form.
func (s *BookingService) SaveDraft(ctx context.Context, ident *identity.Identity, draft *model.Draft) (string, error) {
	if ident == nil {
		return "", apperrors.Unauthorized("authentication required")
	}

	draft.UserID = ident.UID
	if draft.UserEmail == "" {
		draft.UserEmail = ident.Email
	}
	s.sanitizeDraft(draft)

	if err := s.validator.ValidateDraft(draft); err != nil {
		return "", validationError(err)
	}

	id, err := s.drafts.Upsert(ctx, draft)
	if err != nil {
		s.logger.Error("Failed to upsert draft", "user_id", ident.UID, "error", err)
		return "", apperrors.Internal("failed to save draft", err)
	}

	s.logger.Info("Draft saved", "user_id", ident.UID, "draft_id", id)
	return id, nil
}

// GetDraft returns the caller's draft, if any.
func (s *BookingService) GetDraft(ctx context.Context, ident *identity.Identity) (*model.Draft, error) {
	if ident == nil {
		return nil, apperrors.Unauthorized("authentication required")
	}

	draft, err := s.drafts.FindByUserID(ctx, ident.UID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrDraftNotFound) {
			return nil, apperrors.NotFound("draft")
		}
		s.logger.Error("Failed to load draft", "user_id", ident.UID, "error", err)
		return nil, apperrors.Internal("failed to load draft", err)
	}

	return draft, nil
}

// SavePriceEstimate prices the selection server-side and stores the
// breakdown on the caller's draft. A missing draft is not an error; the
// quote is still returned so the form can display it.
func (s *BookingService) SavePriceEstimate(ctx context.Context, ident *identity.Identity, guestCount int, addOnIDs []string) (pricing.Breakdown, error) {
	if ident == nil {
		return pricing.Breakdown{}, apperrors.Unauthorized("authentication required")
	}

	breakdown, err := pricing.Quote(guestCount, sanitizer.NormalizeAddOnIDs(addOnIDs))
	if err != nil {
		return pricing.Breakdown{}, err
	}

	err = s.drafts.SetPrice(ctx, ident.UID, breakdown.BasePrice, breakdown.AdditionalPrice, breakdown.TotalPrice)
	if err != nil && !errors.Is(err, bookingserrors.ErrDraftNotFound) {
		s.logger.Error("Failed to store price estimate", "user_id", ident.UID, "error", err)
		return pricing.Breakdown{}, apperrors.Internal("failed to save price estimate", err)
	}

	return breakdown, nil
}

// Finalize turns the caller's selection into a persistent booking. The
// price is recomputed server-side; a client total that disagrees with it
// is rejected. Slot exclusivity is enforced twice: an advisory lock keyed
// by the slot serializes concurrent finalize calls, and the availability
// re-check plus insert run in one transaction.
func (s *BookingService) Finalize(ctx context.Context, ident *identity.Identity, booking *model.Booking) (*model.Booking, error) {
	if ident == nil {
		return nil, apperrors.Unauthorized("authentication required")
	}

	booking.ID = ""
	booking.UserID = ident.UID
	if booking.UserEmail == "" {
		booking.UserEmail = ident.Email
	}
	booking.Status = model.StatusPending
	booking.PaymentStatus = model.PaymentPending
	booking.Date = booking.Date.UTC().Truncate(24 * time.Hour)
	s.sanitizeBooking(booking)

	breakdown, err := pricing.Quote(booking.GuestCount, booking.AdditionalServices)
	if err != nil {
		return nil, err
	}
	if booking.TotalPrice != 0 && booking.TotalPrice != breakdown.TotalPrice {
		return nil, apperrors.Validation(
			"submitted total does not match the computed price",
			map[string]any{
				"field":          "total_price",
				"submitted":      booking.TotalPrice,
				"computed_total": breakdown.TotalPrice,
			},
		)
	}
	booking.BasePrice = breakdown.BasePrice
	booking.AdditionalPrice = breakdown.AdditionalPrice
	booking.TotalPrice = breakdown.TotalPrice

	if err := s.validator.Validate(booking); err != nil {
		return nil, validationError(err)
	}

	lockID := model.SlotKey(booking.Location, booking.Date, booking.Time)
	lock := &model.SlotLock{
		ID:        lockID,
		ExpiresAt: time.Now().UTC().Add(s.cfg.SlotLockTTL),
	}
	if _, err := s.slotLocks.Create(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			s.logger.Warn("Slot lock contention", "slot", lockID, "user_id", ident.UID)
			return nil, apperrors.Conflict("time slot is being booked by someone else")
		}
		s.logger.Error("Failed to acquire slot lock", "slot", lockID, "error", err)
		return nil, apperrors.Internal("failed to reserve time slot", err)
	}
	defer func() {
		if err := s.slotLocks.Delete(context.WithoutCancel(ctx), lockID); err != nil {
			// The TTL index reaps it shortly.
			s.logger.Warn("Failed to release slot lock", "slot", lockID, "error", err)
		}
	}()

	dayEnd := booking.Date.Add(24*time.Hour - time.Nanosecond)
	err = s.bookings.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		taken, err := s.bookings.BookedTimes(sessCtx, booking.Location, booking.Date, dayEnd)
		if err != nil {
			// Cannot prove the slot is free, so do not write.
			s.logger.Error("Availability re-check failed during finalize", "slot", lockID, "error", err)
			return apperrors.Unavailable("availability check")
		}
		for _, t := range taken {
			if t == booking.Time {
				return apperrors.Conflict("time slot is already booked")
			}
		}
		return s.bookings.Create(sessCtx, booking)
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		s.logger.Error("Failed to finalize booking",
			"user_id", ident.UID,
			"slot", lockID,
			"error", err,
		)
		return nil, apperrors.Internal("failed to create booking", err)
	}

	if err := s.drafts.DeleteByUserID(ctx, ident.UID); err != nil && !errors.Is(err, bookingserrors.ErrDraftNotFound) {
		s.logger.Warn("Failed to delete draft after finalize", "user_id", ident.UID, "error", err)
	}

	s.logger.Info("Booking created",
		"booking_id", booking.ID,
		"user_id", ident.UID,
		"slot", lockID,
		"total_price", booking.TotalPrice,
	)

	s.sendNotifications(booking)

	return booking, nil
}

// sendNotifications fires the confirmation and admin events in the
// background. Failures are logged; the booking already exists.
func (s *BookingService) sendNotifications(booking *model.Booking) {
	if s.notifier == nil {
		return
	}

	snapshot := *booking
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.NotifyTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			if err := s.notifier.SendAdminNotification(ctx, &snapshot); err != nil {
				s.logger.Error("Failed to send admin notification",
					"booking_id", snapshot.ID,
					"error", err,
				)
			}
		}()

		if err := s.notifier.SendBookingConfirmation(ctx, &snapshot); err != nil {
			s.logger.Error("Failed to send booking confirmation",
				"booking_id", snapshot.ID,
				"error", err,
			)
		}
		<-done
	}()
}

// GetByID returns a booking to its owner or an admin.
func (s *BookingService) GetByID(ctx context.Context, ident *identity.Identity, id string) (*model.Booking, error) {
	if ident == nil {
		return nil, apperrors.Unauthorized("authentication required")
	}

	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id)
	}

	if booking.UserID != ident.UID && !ident.IsAdmin {
		return nil, apperrors.Forbidden("booking belongs to another user")
	}

	return booking, nil
}

// List returns all bookings newest-first with a total count, admins only.
func (s *BookingService) List(ctx context.Context, ident *identity.Identity, limit int, offset int64) ([]*model.Booking, int64, error) {
	if ident == nil {
		return nil, 0, apperrors.Unauthorized("authentication required")
	}
	if !ident.IsAdmin {
		return nil, 0, apperrors.Forbidden("admin access required")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	bookings, err := s.bookings.FindAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list bookings", "error", err)
		return nil, 0, apperrors.Internal("failed to list bookings", err)
	}

	total, err := s.bookings.Count(ctx)
	if err != nil {
		s.logger.Error("Failed to count bookings", "error", err)
		return nil, 0, apperrors.Internal("failed to list bookings", err)
	}

	if bookings == nil {
		bookings = []*model.Booking{}
	}
	return bookings, total, nil
}

// UpdateStatus moves a booking through the status machine, admins only.
// Illegal transitions are conflicts, not validation errors: the booking
// exists, its current state just forbids the move.
func (s *BookingService) UpdateStatus(ctx context.Context, ident *identity.Identity, id, status string) (*model.Booking, error) {
	if ident == nil {
		return nil, apperrors.Unauthorized("authentication required")
	}
	if !ident.IsAdmin {
		return nil, apperrors.Forbidden("admin access required")
	}

	if status != model.StatusPending && status != model.StatusConfirmed && status != model.StatusCancelled {
		return nil, apperrors.Validation(
			"unknown booking status",
			map[string]any{"field": "status"},
		)
	}

	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id)
	}

	if !CanTransition(booking.Status, status) {
		return nil, apperrors.Conflict("status transition not allowed").WithDetails(map[string]any{
			"from": booking.Status,
			"to":   status,
		})
	}

	if err := s.bookings.UpdateFields(ctx, id, bson.M{"status": status}); err != nil {
		return nil, s.mapRepoError(err, id)
	}

	s.audit.Record(ctx, &model.AuditLogEntry{
		ActorUID:  ident.UID,
		Action:    model.AuditActionStatusChange,
		BookingID: id,
		Before:    map[string]any{"status": booking.Status},
		After:     map[string]any{"status": status},
	})

	s.logger.Info("Booking status changed",
		"booking_id", id,
		"from", booking.Status,
		"to", status,
		"actor_uid", ident.UID,
	)

	booking.Status = status
	booking.UpdatedAt = time.Now().UTC()
	return booking, nil
}

// UpdateOwnedFields applies the owner-editable patch: contact details,
// special requests and the reschedule note. Identity fields of the booking
// cannot be changed this way regardless of what the client submits.
func (s *BookingService) UpdateOwnedFields(ctx context.Context, ident *identity.Identity, id string, patch *model.BookingPatch) (*model.Booking, error) {
	if ident == nil {
		return nil, apperrors.Unauthorized("authentication required")
	}

	s.sanitizePatch(patch)
	if err := s.validator.ValidatePatch(patch); err != nil {
		return nil, validationError(err)
	}

	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id)
	}
	if booking.UserID != ident.UID {
		return nil, apperrors.Forbidden("booking belongs to another user")
	}

	fields := bson.M{}
	before := map[string]any{}
	after := map[string]any{}

	if patch.ContactInfo != nil {
		if patch.ContactInfo.Name != nil {
			fields["contact_info.name"] = *patch.ContactInfo.Name
			before["contact_info.name"] = booking.ContactInfo.Name
			after["contact_info.name"] = *patch.ContactInfo.Name
			booking.ContactInfo.Name = *patch.ContactInfo.Name
		}
		if patch.ContactInfo.Email != nil {
			fields["contact_info.email"] = *patch.ContactInfo.Email
			before["contact_info.email"] = booking.ContactInfo.Email
			after["contact_info.email"] = *patch.ContactInfo.Email
			booking.ContactInfo.Email = *patch.ContactInfo.Email
		}
		if patch.ContactInfo.Phone != nil {
			fields["contact_info.phone"] = *patch.ContactInfo.Phone
			before["contact_info.phone"] = booking.ContactInfo.Phone
			after["contact_info.phone"] = *patch.ContactInfo.Phone
			booking.ContactInfo.Phone = *patch.ContactInfo.Phone
		}
	}
	if patch.SpecialRequests != nil {
		fields["special_requests"] = *patch.SpecialRequests
		before["special_requests"] = booking.SpecialRequests
		after["special_requests"] = *patch.SpecialRequests
		booking.SpecialRequests = *patch.SpecialRequests
	}
	if patch.RescheduleNote != nil {
		fields["reschedule_note"] = *patch.RescheduleNote
		before["reschedule_note"] = booking.RescheduleNote
		after["reschedule_note"] = *patch.RescheduleNote
		booking.RescheduleNote = *patch.RescheduleNote
	}

	if len(fields) == 0 {
		return booking, nil
	}

	if err := s.bookings.UpdateFields(ctx, id, fields); err != nil {
		return nil, s.mapRepoError(err, id)
	}

	s.audit.Record(ctx, &model.AuditLogEntry{
		ActorUID:  ident.UID,
		Action:    model.AuditActionOwnerPatch,
		BookingID: id,
		Before:    before,
		After:     after,
	})

	booking.UpdatedAt = time.Now().UTC()
	return booking, nil
}

// Delete removes a booking permanently, admins only. Customers cancel via
// the status machine instead, which preserves the record.
func (s *BookingService) Delete(ctx context.Context, ident *identity.Identity, id string) error {
	if ident == nil {
		return apperrors.Unauthorized("authentication required")
	}
	if !ident.IsAdmin {
		return apperrors.Forbidden("admin access required")
	}

	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return s.mapRepoError(err, id)
	}

	if err := s.bookings.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id)
	}

	s.audit.Record(ctx, &model.AuditLogEntry{
		ActorUID:  ident.UID,
		Action:    model.AuditActionDelete,
		BookingID: id,
		Before: map[string]any{
			"status":   booking.Status,
			"location": booking.Location,
			"date":     booking.Date.Format(model.DateOnly),
			"time":     booking.Time,
			"user_id":  booking.UserID,
		},
	})

	s.logger.Info("Booking deleted", "booking_id", id, "actor_uid", ident.UID)
	return nil
}

func (s *BookingService) sanitizeBooking(b *model.Booking) {
	b.ContactInfo.Name = sanitizer.NormalizeName(b.ContactInfo.Name)
	b.ContactInfo.Email = sanitizer.NormalizeEmail(b.ContactInfo.Email)
	b.ContactInfo.Phone = sanitizer.NormalizePhone(b.ContactInfo.Phone)
	b.UserEmail = sanitizer.NormalizeEmail(b.UserEmail)
	b.SpecialRequests = sanitizer.NormalizeNote(b.SpecialRequests)
	b.RescheduleNote = sanitizer.NormalizeNote(b.RescheduleNote)
	b.AdditionalServices = sanitizer.NormalizeAddOnIDs(b.AdditionalServices)
}

func (s *BookingService) sanitizeDraft(d *model.Draft) {
	d.ContactInfo.Name = sanitizer.NormalizeName(d.ContactInfo.Name)
	d.ContactInfo.Email = sanitizer.NormalizeEmail(d.ContactInfo.Email)
	if d.ContactInfo.Phone != "" {
		d.ContactInfo.Phone = sanitizer.NormalizePhone(d.ContactInfo.Phone)
	}
	d.UserEmail = sanitizer.NormalizeEmail(d.UserEmail)
	d.SpecialRequests = sanitizer.NormalizeNote(d.SpecialRequests)
	if d.AdditionalServices != nil {
		d.AdditionalServices = sanitizer.NormalizeAddOnIDs(d.AdditionalServices)
	}
}

func (s *BookingService) sanitizePatch(p *model.BookingPatch) {
	if p.ContactInfo != nil {
		if p.ContactInfo.Name != nil {
			name := sanitizer.NormalizeName(*p.ContactInfo.Name)
			p.ContactInfo.Name = &name
		}
		if p.ContactInfo.Email != nil {
			email := sanitizer.NormalizeEmail(*p.ContactInfo.Email)
			p.ContactInfo.Email = &email
		}
		if p.ContactInfo.Phone != nil {
			// Keep unparseable input intact so validation rejects it
			// instead of silently erasing the stored number.
			if phone := sanitizer.NormalizePhone(*p.ContactInfo.Phone); phone != "" {
				p.ContactInfo.Phone = &phone
			}
		}
	}
	if p.SpecialRequests != nil {
		note := sanitizer.NormalizeNote(*p.SpecialRequests)
		p.SpecialRequests = &note
	}
	if p.RescheduleNote != nil {
		note := sanitizer.NormalizeNote(*p.RescheduleNote)
		p.RescheduleNote = &note
	}
}

// mapRepoError translates repository sentinels into client-facing errors.
func (s *BookingService) mapRepoError(err error, id string) error {
	switch {
	case errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.InvalidInput("invalid booking id")
	case errors.Is(err, bookingserrors.ErrNotFound):
		return apperrors.NotFoundWithID("booking", id)
	default:
		s.logger.Error("Booking repository error", "booking_id", id, "error", err)
		return apperrors.Internal("booking operation failed", err)
	}
}

// validationError wraps validator output so the handler layer writes a 422
// with field detail.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]map[string]any, 0, len(verrs))
		for _, ve := range verrs {
			fields = append(fields, map[string]any{
				"field":   ve.Field,
				"message": ve.Message,
			})
		}
		return apperrors.Validation("validation failed", map[string]any{"errors": fields})
	}
	return apperrors.Validation(err.Error(), nil)
}
