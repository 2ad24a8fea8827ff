package manage

import (
	"context"
	"fmt"
	"log/slog"
)

// Delete asks the Confirmer to approve deleting the current selection. The
// prompt's OnConfirm deletes through the FolderService and then refreshes.
// It reports false when nothing is selected.
func (c *Controller) Delete() bool {
	c.mu.Lock()
	data := c.foldersAndDashboardsToDeleteLocked()
	c.mu.Unlock()

	if len(data.FolderUIDs) == 0 && len(data.DashboardUIDs) == 0 {
		return false
	}

	text, text2 := deleteConfirmText(len(data.FolderUIDs), len(data.DashboardUIDs))
	c.confirm.Confirm(Prompt{
		Title:   "Delete",
		Text:    text,
		Text2:   text2,
		Icon:    "trash-alt",
		YesText: "Delete",
		OnConfirm: func(ctx context.Context) error {
			return c.deleteFoldersAndDashboards(ctx, data)
		},
	})
	return true
}

func (c *Controller) deleteFoldersAndDashboards(ctx context.Context, data FoldersAndDashboards) error {
	if err := c.folders.DeleteFoldersAndDashboards(ctx, data.FolderUIDs, data.DashboardUIDs); err != nil {
		return fmt.Errorf("delete folders and dashboards: %w", err)
	}
	c.logger.Info("deleted folders and dashboards",
		slog.Int("folders", len(data.FolderUIDs)),
		slog.Int("dashboards", len(data.DashboardUIDs)),
	)
	return c.Refresh().Run(ctx)
}

// MoveTo hands the checked dashboards to the Mover with a refresh as the
// after-save callback. It reports false when no dashboard is checked.
func (c *Controller) MoveTo() bool {
	uids := c.DashboardsToMove()
	if len(uids) == 0 {
		return false
	}
	c.mover.Move(uids, func(ctx context.Context) error {
		return c.Refresh().Run(ctx)
	})
	return true
}

func deleteConfirmText(folderCount, dashCount int) (text, text2 string) {
	text = "Do you want to delete the "
	switch {
	case folderCount > 0 && dashCount > 0:
		text += fmt.Sprintf("selected folder%s and dashboard%s?", plural(folderCount), plural(dashCount))
		text2 = fmt.Sprintf("All dashboards of the selected folder%s will also be deleted", plural(folderCount))
	case folderCount > 0:
		text += fmt.Sprintf("selected folder%s and all its dashboards?", plural(folderCount))
	default:
		text += fmt.Sprintf("selected dashboard%s?", plural(dashCount))
	}
	return text, text2
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
