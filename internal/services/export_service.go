package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/admission-service/internal/repositories"
)

type exportService struct {
	approval ApprovalService
	logger   *slog.Logger
}

func NewExportService(approval ApprovalService, logger *slog.Logger) ExportService {
	return &exportService{approval: approval, logger: logger}
}

// ExportApprovalHistory renders the approver's decisions and statistics
// into a two-sheet workbook. Permission checks are delegated to the
// approval service.
func (s *exportService) ExportApprovalHistory(ctx context.Context, approverUID string) (*excelize.File, error) {
	history, err := s.approval.GetApprovalHistory(ctx, approverUID, repositories.ApprovalLogFilters{})
	if err != nil {
		return nil, err
	}

	stats, err := s.approval.GetApprovalStatistics(ctx, approverUID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	const historySheet = "History"
	f.SetSheetName(f.GetSheetName(0), historySheet)

	headers := []string{"Decided At", "Target Email", "Target Role", "Action", "Reason", "School"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(historySheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, entry := range history.Entries {
		values := []interface{}{
			entry.CreatedAt.Format(time.RFC3339),
			entry.TargetEmail,
			string(entry.TargetRole),
			string(entry.Action),
			derefOrEmpty(entry.Reason),
			derefOrEmpty(entry.SchoolID),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(historySheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write history row: %w", err)
			}
		}
	}

	const statsSheet = "Statistics"
	if _, err := f.NewSheet(statsSheet); err != nil {
		return nil, fmt.Errorf("failed to create statistics sheet: %w", err)
	}

	statRows := []struct {
		label string
		value int64
	}{
		{"Pending", stats.PendingCount},
		{"Approved", stats.ApprovedCount},
		{"Rejected", stats.RejectedCount},
		{"Total Processed", stats.TotalProcessed},
	}
	for i, row := range statRows {
		labelCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valueCell, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := f.SetCellValue(statsSheet, labelCell, row.label); err != nil {
			return nil, fmt.Errorf("failed to write statistics: %w", err)
		}
		if err := f.SetCellValue(statsSheet, valueCell, row.value); err != nil {
			return nil, fmt.Errorf("failed to write statistics: %w", err)
		}
	}

	s.logger.Info("Approval history exported",
		"approver_uid", approverUID, "entries", len(history.Entries))

	return f, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
