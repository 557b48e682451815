package session

// Placement defaults. New items cascade vertically by a fixed step per
// existing item on the same page so they never land exactly on top of
// each other.
const (
	textBaseX, textBaseY         = 50.0, 50.0
	textCascadeStep              = 20.0
	imageBaseX, imageBaseY       = 100.0, 100.0
	imageCascadeStep             = 120.0
	imageDefaultW, imageDefaultH = 100.0, 100.0
	checkboxBaseX, checkboxBaseY = 50.0, 50.0
	checkboxCascadeStep          = 20.0

	// DefaultText is the initial content of a fresh text item.
	DefaultText = "New Text"
)

// AddText allocates the next text id and appends a new text item on the
// given page.
func (s *Session) AddText(pageIndex int) *TextItem {
	n := 0
	for _, t := range s.TextItems {
		if t.PageIndex == pageIndex {
			n++
		}
	}
	item := &TextItem{
		ID:        s.Counters.Text,
		PageIndex: pageIndex,
		X:         textBaseX,
		Y:         textBaseY + float64(n)*textCascadeStep,
		Text:      DefaultText,
	}
	s.Counters.Text++
	s.TextItems = append(s.TextItems, item)
	return item
}

// AddImage allocates the next image id and appends a new image item on
// the given page. src holds the encoded image bytes; the item gets a
// fixed default size.
func (s *Session) AddImage(pageIndex int, src []byte) *ImageItem {
	n := 0
	for _, i := range s.ImageItems {
		if i.PageIndex == pageIndex {
			n++
		}
	}
	item := &ImageItem{
		ID:        s.Counters.Image,
		PageIndex: pageIndex,
		X:         imageBaseX,
		Y:         imageBaseY + float64(n)*imageCascadeStep,
		Src:       src,
		Width:     imageDefaultW,
		Height:    imageDefaultH,
	}
	s.Counters.Image++
	s.ImageItems = append(s.ImageItems, item)
	return item
}

// AddCheckbox allocates the next checkbox id and appends a new unchecked
// checkbox item on the given page.
func (s *Session) AddCheckbox(pageIndex int) *CheckboxItem {
	n := 0
	for _, c := range s.CheckboxItems {
		if c.PageIndex == pageIndex {
			n++
		}
	}
	item := &CheckboxItem{
		ID:        s.Counters.Checkbox,
		PageIndex: pageIndex,
		X:         checkboxBaseX,
		Y:         checkboxBaseY + float64(n)*checkboxCascadeStep,
	}
	s.Counters.Checkbox++
	s.CheckboxItems = append(s.CheckboxItems, item)
	return item
}

// FindText returns the text item with the given id.
func (s *Session) FindText(id int) (*TextItem, bool) {
	for _, t := range s.TextItems {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// UpdateText overwrites the text of the item with the given id. An
// unknown id is a silent no-op: a commit can legitimately race a future
// delete, so it is not an error.
func (s *Session) UpdateText(id int, text string) {
	if t, ok := s.FindText(id); ok {
		t.Text = text
	}
}

// Update looks up the item of the given kind and id and applies the
// mutator to it in place. It reports whether the item was found. All
// state mutation after creation goes through here: drag deltas, text
// commits, checkbox toggles.
func (s *Session) Update(kind Kind, id int, mutate func(Item)) bool {
	item, ok := s.find(kind, id)
	if !ok {
		return false
	}
	mutate(item)
	return true
}

// Translate adds a position delta to the item of the given kind and id.
// Coordinates are not clamped; items may move off-page or negative.
func (s *Session) Translate(kind Kind, id int, dx, dy float64) bool {
	return s.Update(kind, id, func(it Item) { it.MoveBy(dx, dy) })
}

// SetChecked sets the checked state of a checkbox item.
func (s *Session) SetChecked(id int, checked bool) bool {
	return s.Update(KindCheckbox, id, func(it Item) {
		it.(*CheckboxItem).Checked = checked
	})
}

func (s *Session) find(kind Kind, id int) (Item, bool) {
	switch kind {
	case KindText:
		if t, ok := s.FindText(id); ok {
			return t, true
		}
	case KindImage:
		for _, i := range s.ImageItems {
			if i.ID == id {
				return i, true
			}
		}
	case KindCheckbox:
		for _, c := range s.CheckboxItems {
			if c.ID == id {
				return c, true
			}
		}
	}
	return nil, false
}
