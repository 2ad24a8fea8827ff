package manage

// ToggleSelectAll flips the select-all flag and applies it to every section
// with a visible header and to every item.
func (c *Controller) ToggleSelectAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selectAllChecked = !c.selectAllChecked
	for i := range c.sections {
		section := &c.sections[i]
		if !section.HideHeader {
			section.Checked = c.selectAllChecked
		}
		setChecked(section.Items, c.selectAllChecked)
	}
	c.selectionChangedLocked()
}

// ToggleSection flips the section's checked flag and cascades it to the
// section's items. It reports false when index is out of range.
func (c *Controller) ToggleSection(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.sections) {
		return false
	}
	section := &c.sections[index]
	section.Checked = !section.Checked
	setChecked(section.Items, section.Checked)
	c.selectionChangedLocked()
	return true
}

// ToggleItem flips the checked flag of the item addressed by section index
// and item path (one index per nesting level) and cascades it to nested
// items. It reports false when the address does not resolve.
func (c *Controller) ToggleItem(section int, path ...int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if section < 0 || section >= len(c.sections) || len(path) == 0 {
		return false
	}
	items := c.sections[section].Items
	var item *Item
	for _, idx := range path {
		if idx < 0 || idx >= len(items) {
			return false
		}
		item = &items[idx]
		items = item.Items
	}
	item.Checked = !item.Checked
	setChecked(item.Items, item.Checked)
	c.selectionChangedLocked()
	return true
}

func (c *Controller) selectionChangedLocked() {
	selectedDashboards := 0
	selectedFolders := 0
	for _, section := range c.sections {
		selectedDashboards += countChecked(section.Items)
		if section.Checked {
			selectedFolders++
		}
	}
	c.canMove = selectedDashboards > 0
	c.canDelete = selectedDashboards > 0 || selectedFolders > 0
}

// FoldersAndDashboardsToDelete partitions the selection. A checked folder
// section contributes its UID only, since deleting it removes its dashboards.
// The General section never contributes a folder.
func (c *Controller) FoldersAndDashboardsToDelete() FoldersAndDashboards {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.foldersAndDashboardsToDeleteLocked()
}

func (c *Controller) foldersAndDashboardsToDeleteLocked() FoldersAndDashboards {
	var out FoldersAndDashboards
	for _, section := range c.sections {
		if section.Checked && !section.IsGeneral() {
			out.FolderUIDs = append(out.FolderUIDs, section.UID)
			continue
		}
		out.DashboardUIDs = appendCheckedUIDs(out.DashboardUIDs, section.Items)
	}
	return out
}

// DashboardsToMove collects every checked dashboard. Section checked state
// is ignored.
func (c *Controller) DashboardsToMove() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dashboardsToMoveLocked()
}

func (c *Controller) dashboardsToMoveLocked() []string {
	var uids []string
	for _, section := range c.sections {
		uids = appendCheckedUIDs(uids, section.Items)
	}
	return uids
}

func setChecked(items []Item, checked bool) {
	for i := range items {
		items[i].Checked = checked
		setChecked(items[i].Items, checked)
	}
}

func uncheckItems(items []Item) {
	setChecked(items, false)
}

func countChecked(items []Item) int {
	n := 0
	for _, it := range items {
		if it.Checked {
			n++
		}
		n += countChecked(it.Items)
	}
	return n
}

func appendCheckedUIDs(dst []string, items []Item) []string {
	for _, it := range items {
		if it.Checked {
			dst = append(dst, it.UID)
		}
		dst = appendCheckedUIDs(dst, it.Items)
	}
	return dst
}
