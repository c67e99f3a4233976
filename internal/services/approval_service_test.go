package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/SAP-F-2025/admission-service/internal/events"
	"github.com/SAP-F-2025/admission-service/internal/models"
	"github.com/SAP-F-2025/admission-service/internal/repositories"
	"github.com/SAP-F-2025/admission-service/internal/validator"
)

// In-memory repository for testing

type fakeUserRepository struct {
	users map[string]*models.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*models.User)}
}

func (f *fakeUserRepository) Create(_ context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return repositories.ErrDuplicate
		}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	copied := *user
	f.users[user.UID] = &copied
	return nil
}

func (f *fakeUserRepository) GetByUID(_ context.Context, uid string) (*models.User, error) {
	user, ok := f.users[uid]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	matched := f.match(filters)
	return matched, int64(len(matched)), nil
}

func (f *fakeUserRepository) ListPending(_ context.Context, filters repositories.UserFilters) ([]*models.User, error) {
	pending := true
	filters.Pending = &pending
	matched := f.match(filters)
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	return matched, nil
}

func (f *fakeUserRepository) match(filters repositories.UserFilters) []*models.User {
	var out []*models.User
	for _, user := range f.users {
		if len(filters.Roles) > 0 {
			found := false
			for _, role := range filters.Roles {
				if user.Role.Canonical() == role {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if filters.SchoolID != nil {
			if user.SchoolID == nil || *user.SchoolID != *filters.SchoolID {
				continue
			}
		}
		if filters.Pending != nil && *filters.Pending != user.IsPending() {
			continue
		}
		copied := *user
		out = append(out, &copied)
	}
	return out
}

func (f *fakeUserRepository) Decide(_ context.Context, params repositories.DecideParams) (*models.User, error) {
	user, ok := f.users[params.TargetUID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if user.IsApproved || user.DecidedAt != nil {
		return nil, repositories.ErrAlreadyDecided
	}

	decidedAt := params.DecidedAt
	user.DecidedAt = &decidedAt
	user.ApprovedBy = &params.ApproverUID
	if params.Approved {
		user.IsApproved = true
		user.ApprovedAt = &decidedAt
	} else {
		user.IsActive = false
		user.RejectedAt = &decidedAt
		user.RejectionReason = params.Reason
	}

	copied := *user
	return &copied, nil
}

func (f *fakeUserRepository) Count(ctx context.Context, filters repositories.UserFilters) (int64, error) {
	return int64(len(f.match(filters))), nil
}

func (f *fakeUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, user := range f.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, user := range f.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type fakeApprovalLogRepository struct {
	entries []*models.ApprovalLog
}

func (f *fakeApprovalLogRepository) Append(_ context.Context, entry *models.ApprovalLog) error {
	copied := *entry
	f.entries = append(f.entries, &copied)
	return nil
}

func (f *fakeApprovalLogRepository) ListByApprover(_ context.Context, approverUID string, filters repositories.ApprovalLogFilters) ([]*models.ApprovalLog, error) {
	var out []*models.ApprovalLog
	for _, entry := range f.entries {
		if entry.ApproverUID != approverUID {
			continue
		}
		if filters.Action != nil && entry.Action != *filters.Action {
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

func (f *fakeApprovalLogRepository) ListByTarget(_ context.Context, targetUID string) ([]*models.ApprovalLog, error) {
	var out []*models.ApprovalLog
	for _, entry := range f.entries {
		if entry.TargetUID == targetUID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (f *fakeApprovalLogRepository) CountByApprover(ctx context.Context, approverUID string, action *models.ApprovalAction) (int64, error) {
	entries, _ := f.ListByApprover(ctx, approverUID, repositories.ApprovalLogFilters{Action: action})
	return int64(len(entries)), nil
}

type fakeSchoolRepository struct {
	schools map[string]*models.School
}

func newFakeSchoolRepository() *fakeSchoolRepository {
	return &fakeSchoolRepository{schools: make(map[string]*models.School)}
}

func (f *fakeSchoolRepository) Create(_ context.Context, school *models.School) error {
	if _, ok := f.schools[school.ID]; ok {
		return repositories.ErrDuplicate
	}
	copied := *school
	f.schools[school.ID] = &copied
	return nil
}

func (f *fakeSchoolRepository) GetByID(_ context.Context, id string) (*models.School, error) {
	school, ok := f.schools[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *school
	return &copied, nil
}

func (f *fakeSchoolRepository) List(_ context.Context, _ repositories.SchoolFilters) ([]*models.School, int64, error) {
	var out []*models.School
	for _, school := range f.schools {
		copied := *school
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSchoolRepository) Update(_ context.Context, school *models.School) error {
	if _, ok := f.schools[school.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *school
	f.schools[school.ID] = &copied
	return nil
}

func (f *fakeSchoolRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.schools[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.schools, id)
	return nil
}

func (f *fakeSchoolRepository) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := f.schools[id]
	return ok, nil
}

type fakeRepository struct {
	user        *fakeUserRepository
	approvalLog *fakeApprovalLogRepository
	school      *fakeSchoolRepository
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		user:        newFakeUserRepository(),
		approvalLog: &fakeApprovalLogRepository{},
		school:      newFakeSchoolRepository(),
	}
}

func (f *fakeRepository) User() repositories.UserRepository               { return f.user }
func (f *fakeRepository) ApprovalLog() repositories.ApprovalLogRepository { return f.approvalLog }
func (f *fakeRepository) School() repositories.SchoolRepository           { return f.school }
func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}
func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

// Test fixtures

func strPtr(s string) *string { return &s }

func seedUser(repo *fakeRepository, uid string, role models.UserRole, schoolID *string, pending bool) *models.User {
	user := &models.User{
		UID:       uid,
		Username:  uid,
		Email:     uid + "@example.com",
		FullName:  uid,
		Role:      role,
		SchoolID:  schoolID,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if !pending {
		now := time.Now().UTC()
		user.IsApproved = true
		user.DecidedAt = &now
	}
	repo.user.users[uid] = user
	return user
}

func newTestApprovalService(repo *fakeRepository, publisher events.EventPublisher) ApprovalService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewApprovalService(repo, nil, logger, validator.New(), publisher)
}

func TestApproveUser(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx := context.Background()
	school := strPtr("school-1")
	otherSchool := strPtr("school-2")

	t.Run("AdminApprovesDepartmentHead", func(t *testing.T) {
		repo := newFakeRepository()
		publisher := events.NewMockEventPublisher(logger)
		service := newTestApprovalService(repo, publisher)

		seedUser(repo, "admin-1", models.RoleAdmin, nil, false)
		seedUser(repo, "head-1", models.RoleDepartmentHead, school, true)

		result, err := service.ApproveUser(ctx, "admin-1", &ApprovalRequest{
			UserUID:  "head-1",
			Approved: true,
		})
		if err != nil {
			t.Fatalf("ApproveUser failed: %v", err)
		}
		if !result.Success || !result.IsApproved {
			t.Errorf("Expected successful approval, got %+v", result)
		}
		if result.ApprovedBy != "admin-1" {
			t.Errorf("Expected approved_by admin-1, got %s", result.ApprovedBy)
		}

		updated, _ := repo.user.GetByUID(ctx, "head-1")
		if !updated.IsApproved || updated.DecidedAt == nil || updated.ApprovedAt == nil {
			t.Errorf("Target state not settled: %+v", updated)
		}

		if len(repo.approvalLog.entries) != 1 {
			t.Fatalf("Expected 1 audit entry, got %d", len(repo.approvalLog.entries))
		}
		entry := repo.approvalLog.entries[0]
		if entry.Action != models.ApprovalActionApproved || entry.TargetUID != "head-1" {
			t.Errorf("Unexpected audit entry: %+v", entry)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventUserApproved {
			t.Errorf("Expected one user.approved event, got %+v", published)
		}
	})

	t.Run("DepartmentHeadRejectsTeacher", func(t *testing.T) {
		repo := newFakeRepository()
		publisher := events.NewMockEventPublisher(logger)
		service := newTestApprovalService(repo, publisher)

		seedUser(repo, "head-1", models.RoleDepartmentHead, school, false)
		seedUser(repo, "teacher-1", models.RoleGeneralTeacher, school, true)

		result, err := service.ApproveUser(ctx, "head-1", &ApprovalRequest{
			UserUID:         "teacher-1",
			Approved:        false,
			RejectionReason: strPtr("incomplete application"),
		})
		if err != nil {
			t.Fatalf("ApproveUser failed: %v", err)
		}
		if result.IsApproved {
			t.Error("Rejection must not mark the target approved")
		}

		updated, _ := repo.user.GetByUID(ctx, "teacher-1")
		if updated.IsActive {
			t.Error("Rejection must deactivate the account")
		}
		if updated.RejectionReason == nil || *updated.RejectionReason != "incomplete application" {
			t.Errorf("Rejection reason not recorded: %+v", updated.RejectionReason)
		}
		if updated.RejectedAt == nil || updated.DecidedAt == nil {
			t.Error("Rejection timestamps not recorded")
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventUserRejected {
			t.Errorf("Expected one user.rejected event, got %+v", published)
		}
	})

	t.Run("CrossSchoolDenied", func(t *testing.T) {
		repo := newFakeRepository()
		publisher := events.NewMockEventPublisher(logger)
		service := newTestApprovalService(repo, publisher)

		seedUser(repo, "head-1", models.RoleDepartmentHead, school, false)
		seedUser(repo, "teacher-2", models.RoleGeneralTeacher, otherSchool, true)

		_, err := service.ApproveUser(ctx, "head-1", &ApprovalRequest{
			UserUID:  "teacher-2",
			Approved: true,
		})

		var permErr *PermissionError
		if !errors.As(err, &permErr) {
			t.Fatalf("Expected PermissionError, got %v", err)
		}

		updated, _ := repo.user.GetByUID(ctx, "teacher-2")
		if !updated.IsPending() {
			t.Error("Denied decision must not change target state")
		}
		if len(publisher.GetPublishedEvents()) != 0 {
			t.Error("Denied decision must not publish events")
		}
		if len(repo.approvalLog.entries) != 0 {
			t.Error("Denied decision must not be logged")
		}
	})

	t.Run("DepartmentHeadCannotApproveDepartmentHead", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestApprovalService(repo, events.NewMockEventPublisher(logger))

		seedUser(repo, "head-1", models.RoleDepartmentHead, school, false)
		seedUser(repo, "head-2", models.RoleDepartmentHead, school, true)

		_, err := service.ApproveUser(ctx, "head-1", &ApprovalRequest{UserUID: "head-2", Approved: true})

		var permErr *PermissionError
		if !errors.As(err, &permErr) {
			t.Fatalf("Expected PermissionError, got %v", err)
		}
	})

	t.Run("StudentCannotApprove", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestApprovalService(repo, events.NewMockEventPublisher(logger))

		seedUser(repo, "student-1", models.RoleStudent, school, false)
		seedUser(repo, "teacher-1", models.RoleGeneralTeacher, school, true)

		_, err := service.ApproveUser(ctx, "student-1", &ApprovalRequest{UserUID: "teacher-1", Approved: true})

		var permErr *PermissionError
		if !errors.As(err, &permErr) {
			t.Fatalf("Expected PermissionError, got %v", err)
		}
	})

	t.Run("UnknownApproverUnauthorized", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestApprovalService(repo, events.NewMockEventPublisher(logger))

		seedUser(repo, "head-1", models.RoleDepartmentHead, school, true)

		_, err := service.ApproveUser(ctx, "ghost", &ApprovalRequest{UserUID: "head-1", Approved: true})
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("Expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("TargetNotFound", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestApprovalService(repo, events.NewMockEventPublisher(logger))

		seedUser(repo, "admin-1", models.RoleAdmin, nil, false)

		_, err := service.ApproveUser(ctx, "admin-1", &ApprovalRequest{UserUID: "ghost", Approved: true})
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("Expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("SecondDecisionConflicts", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestApprovalService(repo, events.NewMockEventPublisher(logger))

		seedUser(repo, "admin-1", models.RoleAdmin, nil, false)
		seedUser(repo, "head-1", models.RoleDepartmentHead, school, true)

		if _, err := service.ApproveUser(ctx, "admin-1", &ApprovalRequest{UserUID: "head-1", Approved: true}); err != nil {
			t.Fatalf("First decision failed: %v", err)
		}

		_, err := service.ApproveUser(ctx, "admin-1", &ApprovalRequest{
			UserUID:         "head-1",
			Approved:        false,
			RejectionReason: strPtr("changed my mind"),
		})
		if !errors.Is(err, ErrAlreadyDecided) {
			t.Fatalf("Expected ErrAlreadyDecided, got %v", err)
		}
	})

	t.Run("RejectionRequiresReason", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestApprovalService(repo, events.NewMockEventPublisher(logger))

		seedUser(repo, "admin-1", models.RoleAdmin, nil, false)
		seedUser(repo, "head-1", models.RoleDepartmentHead, school, true)

		_, err := service.ApproveUser(ctx, "admin-1", &ApprovalRequest{UserUID: "head-1", Approved: false})

		var validationErrors ValidationErrors
		if !errors.As(err, &validationErrors) {
			t.Fatalf("Expected ValidationErrors, got %v", err)
		}
	})

	t.Run("LegacyHeadTeacherRoleApproves", func(t *testing.T) {
		repo := newFakeRepository()
		publisher := events.NewMockEventPublisher(logger)
		service := newTestApprovalService(repo, publisher)

		seedUser(repo, "head-legacy", models.RoleHeadTeacherLegacy, school, false)
		seedUser(repo, "teacher-1", models.RoleGeneralTeacher, school, true)

		result, err := service.ApproveUser(ctx, "head-legacy", &ApprovalRequest{UserUID: "teacher-1", Approved: true})
		if err != nil {
			t.Fatalf("Legacy role must canonicalize before the permission check: %v", err)
		}
		if !result.IsApproved {
			t.Error("Expected approval to succeed")
		}
	})
}

func TestGetPendingUsers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx := context.Background()
	school := strPtr("school-1")
	otherSchool := strPtr("school-2")

	t.Run("AdminSeesPendingDepartmentHeadsOnly", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestApprovalService(repo, events.NewMockEventPublisher(logger))

		seedUser(repo, "admin-1", models.RoleAdmin, nil, false)
		seedUser(repo, "head-1", models.RoleDepartmentHead, school, true)
		seedUser(repo, "head-2", models.RoleDepartmentHead, otherSchool, true)
		seedUser(repo, "head-3", models.RoleDepartmentHead, school, false)
		seedUser(repo, "teacher-1", models.RoleGeneralTeacher, school, true)

		pending, err := service.GetPendingUsers(ctx, "admin-1")
		if err != nil {
			t.Fatalf("GetPendingUsers failed: %v", err)
		}
		if len(pending) != 2 {
			t.Fatalf("Expected 2 pending department heads, got %d", len(pending))
		}
		for _, user := range pending {
			if user.Role.Canonical() != models.RoleDepartmentHead {
				t.Errorf("Admin scope must only contain department heads, got %s", user.Role)
			}
		}
	})

	t.Run("DepartmentHeadSeesOwnSchoolTeachers", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestApprovalService(repo, events.NewMockEventPublisher(logger))

		seedUser(repo, "head-1", models.RoleDepartmentHead, school, false)
		seedUser(repo, "teacher-1", models.RoleGeneralTeacher, school, true)
		seedUser(repo, "homeroom-1", models.RoleHomeroomTeacher, school, true)
		seedUser(repo, "teacher-2", models.RoleGeneralTeacher, otherSchool, true)
		seedUser(repo, "student-1", models.RoleStudent, school, true)

		pending, err := service.GetPendingUsers(ctx, "head-1")
		if err != nil {
			t.Fatalf("GetPendingUsers failed: %v", err)
		}
		if len(pending) != 2 {
			t.Fatalf("Expected 2 pending teachers, got %d", len(pending))
		}
		for _, user := range pending {
			if user.SchoolID == nil || *user.SchoolID != *school {
				t.Errorf("Pending scan leaked another school: %+v", user)
			}
		}
	})

	t.Run("DepartmentHeadWithoutSchoolSeesNobody", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestApprovalService(repo, events.NewMockEventPublisher(logger))

		seedUser(repo, "head-1", models.RoleDepartmentHead, nil, false)
		seedUser(repo, "teacher-1", models.RoleGeneralTeacher, school, true)

		pending, err := service.GetPendingUsers(ctx, "head-1")
		if err != nil {
			t.Fatalf("GetPendingUsers failed: %v", err)
		}
		if len(pending) != 0 {
			t.Errorf("Expected empty scope, got %d users", len(pending))
		}
	})

	t.Run("NonApproverDenied", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestApprovalService(repo, events.NewMockEventPublisher(logger))

		seedUser(repo, "student-1", models.RoleStudent, school, false)

		_, err := service.GetPendingUsers(ctx, "student-1")
		var permErr *PermissionError
		if !errors.As(err, &permErr) {
			t.Fatalf("Expected PermissionError, got %v", err)
		}
	})
}

func TestGetApprovalStatistics(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx := context.Background()
	school := strPtr("school-1")

	repo := newFakeRepository()
	service := newTestApprovalService(repo, events.NewMockEventPublisher(logger))

	seedUser(repo, "head-1", models.RoleDepartmentHead, school, false)
	seedUser(repo, "teacher-1", models.RoleGeneralTeacher, school, true)
	seedUser(repo, "teacher-2", models.RoleGeneralTeacher, school, true)
	seedUser(repo, "teacher-3", models.RoleHomeroomTeacher, school, true)

	if _, err := service.ApproveUser(ctx, "head-1", &ApprovalRequest{UserUID: "teacher-1", Approved: true}); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if _, err := service.ApproveUser(ctx, "head-1", &ApprovalRequest{
		UserUID:         "teacher-2",
		Approved:        false,
		RejectionReason: strPtr("not eligible"),
	}); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}

	stats, err := service.GetApprovalStatistics(ctx, "head-1")
	if err != nil {
		t.Fatalf("GetApprovalStatistics failed: %v", err)
	}

	if stats.ApprovedCount != 1 || stats.RejectedCount != 1 {
		t.Errorf("Expected 1 approved / 1 rejected, got %d / %d", stats.ApprovedCount, stats.RejectedCount)
	}
	if stats.PendingCount != 1 {
		t.Errorf("Expected 1 pending, got %d", stats.PendingCount)
	}
	if stats.TotalProcessed != stats.ApprovedCount+stats.RejectedCount {
		t.Errorf("TotalProcessed %d must equal approved+rejected %d",
			stats.TotalProcessed, stats.ApprovedCount+stats.RejectedCount)
	}
}

func TestGetApprovalHistory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx := context.Background()
	school := strPtr("school-1")

	t.Run("ReturnsOwnDecisions", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestApprovalService(repo, events.NewMockEventPublisher(logger))

		seedUser(repo, "head-1", models.RoleDepartmentHead, school, false)
		seedUser(repo, "teacher-1", models.RoleGeneralTeacher, school, true)

		if _, err := service.ApproveUser(ctx, "head-1", &ApprovalRequest{UserUID: "teacher-1", Approved: true}); err != nil {
			t.Fatalf("Approve failed: %v", err)
		}

		history, err := service.GetApprovalHistory(ctx, "head-1", repositories.ApprovalLogFilters{})
		if err != nil {
			t.Fatalf("GetApprovalHistory failed: %v", err)
		}
		if history.Total != 1 || len(history.Entries) != 1 {
			t.Fatalf("Expected 1 history entry, got total=%d len=%d", history.Total, len(history.Entries))
		}
		if history.Entries[0].ApproverUID != "head-1" {
			t.Errorf("History leaked another approver: %+v", history.Entries[0])
		}
	})

	t.Run("NonApproverDenied", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestApprovalService(repo, events.NewMockEventPublisher(logger))

		seedUser(repo, "student-1", models.RoleStudent, school, false)

		_, err := service.GetApprovalHistory(ctx, "student-1", repositories.ApprovalLogFilters{})
		var permErr *PermissionError
		if !errors.As(err, &permErr) {
			t.Fatalf("Expected PermissionError, got %v", err)
		}
	})
}

func TestGetMyStatus(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx := context.Background()
	school := strPtr("school-1")

	repo := newFakeRepository()
	service := newTestApprovalService(repo, events.NewMockEventPublisher(logger))

	seedUser(repo, "head-1", models.RoleDepartmentHead, school, false)
	seedUser(repo, "teacher-1", models.RoleGeneralTeacher, school, true)

	t.Run("PendingUser", func(t *testing.T) {
		status, err := service.GetMyStatus(ctx, "teacher-1")
		if err != nil {
			t.Fatalf("GetMyStatus failed: %v", err)
		}
		if !status.IsPending || status.IsApproved {
			t.Errorf("Expected pending status, got %+v", status)
		}
	})

	t.Run("RejectedUser", func(t *testing.T) {
		if _, err := service.ApproveUser(ctx, "head-1", &ApprovalRequest{
			UserUID:         "teacher-1",
			Approved:        false,
			RejectionReason: strPtr("duplicate account"),
		}); err != nil {
			t.Fatalf("Reject failed: %v", err)
		}

		status, err := service.GetMyStatus(ctx, "teacher-1")
		if err != nil {
			t.Fatalf("GetMyStatus failed: %v", err)
		}
		if status.IsPending || status.IsApproved || status.IsActive {
			t.Errorf("Expected rejected status, got %+v", status)
		}
		if status.RejectionReason == nil || *status.RejectionReason != "duplicate account" {
			t.Errorf("Rejection reason missing from status: %+v", status)
		}
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := service.GetMyStatus(ctx, "ghost")
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("Expected ErrUserNotFound, got %v", err)
		}
	})
}
