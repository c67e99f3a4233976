package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/SAP-F-2025/admission-service/internal/events"
	"github.com/SAP-F-2025/admission-service/internal/models"
)

func TestExportApprovalHistory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx := context.Background()
	school := strPtr("school-1")

	repo := newFakeRepository()
	approval := newTestApprovalService(repo, events.NewMockEventPublisher(logger))
	export := NewExportService(approval, logger)

	seedUser(repo, "head-1", models.RoleDepartmentHead, school, false)
	seedUser(repo, "teacher-1", models.RoleGeneralTeacher, school, true)
	seedUser(repo, "teacher-2", models.RoleGeneralTeacher, school, true)

	if _, err := approval.ApproveUser(ctx, "head-1", &ApprovalRequest{UserUID: "teacher-1", Approved: true}); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if _, err := approval.ApproveUser(ctx, "head-1", &ApprovalRequest{
		UserUID:         "teacher-2",
		Approved:        false,
		RejectionReason: strPtr("not eligible"),
	}); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}

	file, err := export.ExportApprovalHistory(ctx, "head-1")
	if err != nil {
		t.Fatalf("ExportApprovalHistory failed: %v", err)
	}

	rows, err := file.GetRows("History")
	if err != nil {
		t.Fatalf("Failed to read History sheet: %v", err)
	}
	// Header plus one row per decision.
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Decided At" {
		t.Errorf("Unexpected header row: %v", rows[0])
	}

	statRows, err := file.GetRows("Statistics")
	if err != nil {
		t.Fatalf("Failed to read Statistics sheet: %v", err)
	}
	if len(statRows) != 4 {
		t.Fatalf("Expected 4 statistics rows, got %d", len(statRows))
	}
	if statRows[3][0] != "Total Processed" || statRows[3][1] != "2" {
		t.Errorf("Unexpected total processed row: %v", statRows[3])
	}
}

func TestExportApprovalHistoryDenied(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx := context.Background()

	repo := newFakeRepository()
	approval := newTestApprovalService(repo, events.NewMockEventPublisher(logger))
	export := NewExportService(approval, logger)

	seedUser(repo, "student-1", models.RoleStudent, strPtr("school-1"), false)

	_, err := export.ExportApprovalHistory(ctx, "student-1")
	var permErr *PermissionError
	if !errors.As(err, &permErr) {
		t.Fatalf("Expected PermissionError, got %v", err)
	}
}
