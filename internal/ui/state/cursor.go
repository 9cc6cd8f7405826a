package state

// Focus movement works over the proxies currently on screen; count is how
// many there are. -1 means nothing is focused.

// MoveFocusHome focuses the first proxy.
func (t *Tab) MoveFocusHome(count int) bool {
	if count <= 0 {
		t.Focus = -1
		return false
	}
	old := t.Focus
	t.Focus = 0
	return old != t.Focus
}

// MoveFocusEnd focuses the last proxy.
func (t *Tab) MoveFocusEnd(count int) bool {
	if count <= 0 {
		t.Focus = -1
		return false
	}
	old := t.Focus
	t.Focus = count - 1
	return old != t.Focus
}

// MoveFocusBy shifts focus by delta, clamped to the proxies on screen. With
// nothing focused, a forward move lands on the first proxy and a backward
// move on the last.
func (t *Tab) MoveFocusBy(delta, count int) bool {
	if count <= 0 {
		t.Focus = -1
		return false
	}
	old := t.Focus
	if t.Focus < 0 || t.Focus >= count {
		if delta < 0 {
			t.Focus = count - 1
		} else {
			t.Focus = 0
		}
		return t.Focus != old
	}
	t.Focus += delta
	if t.Focus < 0 {
		t.Focus = 0
	}
	if t.Focus >= count {
		t.Focus = count - 1
	}
	return t.Focus != old
}

// ClampFocus keeps focus inside the proxies on screen after a page change.
func (t *Tab) ClampFocus(count int) {
	if count <= 0 {
		t.Focus = -1
		return
	}
	if t.Focus >= count {
		t.Focus = count - 1
	}
	if t.Focus < -1 {
		t.Focus = -1
	}
}
