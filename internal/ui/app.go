// Package ui holds the Fyne surfaces and chrome: the interactive capture
// widget, the read-only replay widget, the annotation toolbar, the note
// list and note detail views, and the neon theme.
package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"neonpad/internal/export"
	"neonpad/internal/ink"
	"neonpad/internal/store"
)

var sortLabels = []string{"Last updated", "Created", "Title"}

func sortFromLabel(label string) store.Sort {
	switch label {
	case "Created":
		return store.SortCreatedDesc
	case "Title":
		return store.SortTitleAsc
	default:
		return store.SortUpdatedDesc
	}
}

// App is the desktop shell: one window that swaps between the note list,
// a note's detail view, and the annotation editor.
type App struct {
	db    *store.DB
	log   zerolog.Logger
	win   fyne.Window
	query store.Query
}

// RunApp builds the window and blocks until it is closed.
func RunApp(db *store.DB, log zerolog.Logger) {
	fyneApp := app.New()
	fyneApp.Settings().SetTheme(&neonTheme{})

	a := &App{db: db, log: log}
	a.win = fyneApp.NewWindow("Neonpad")
	a.win.Resize(fyne.NewSize(1024, 768))

	a.showNoteList()
	a.win.ShowAndRun()
}

// showNoteList swaps the window to the filterable, sortable note list.
func (a *App) showNoteList() {
	listBox := container.NewVBox()

	refresh := func() {
		notes, err := a.db.ListNotes(a.query)
		if err != nil {
			a.log.Error().Err(err).Msg("list notes")
			dialog.ShowError(err, a.win)
			return
		}
		listBox.Objects = nil
		for _, n := range notes {
			note := n
			open := widget.NewButton(note.Title, func() {
				a.showNote(note.ID)
			})
			open.Alignment = widget.ButtonAlignLeading
			updated := widget.NewLabel(note.UpdatedAt.Local().Format("Jan 2 15:04"))
			listBox.Add(container.NewBorder(nil, nil, nil, updated, open))
		}
		if len(notes) == 0 {
			listBox.Add(widget.NewLabel("No notes yet."))
		}
		listBox.Refresh()
	}

	search := widget.NewEntry()
	search.SetPlaceHolder("Filter by title…")
	search.SetText(a.query.Search)
	search.OnChanged = func(s string) {
		a.query.Search = s
		refresh()
	}

	sortSel := widget.NewSelect(sortLabels, func(label string) {
		a.query.Sort = sortFromLabel(label)
		refresh()
	})
	sortSel.SetSelectedIndex(int(a.query.Sort))

	newBtn := widget.NewButton("New note", func() {
		entry := widget.NewEntry()
		entry.SetPlaceHolder("Title")
		dialog.ShowForm("New note", "Create", "Cancel",
			[]*widget.FormItem{widget.NewFormItem("Title", entry)},
			func(ok bool) {
				if !ok {
					return
				}
				title := entry.Text
				if title == "" {
					title = "Untitled"
				}
				note, err := a.db.CreateNote(title)
				if err != nil {
					a.log.Error().Err(err).Msg("create note")
					dialog.ShowError(err, a.win)
					return
				}
				a.showNote(note.ID)
			}, a.win)
	})
	newBtn.Importance = widget.HighImportance

	top := container.NewBorder(nil, nil, nil,
		container.NewHBox(sortSel, newBtn), search)

	a.win.SetContent(container.NewBorder(top, nil, nil, nil,
		container.NewVScroll(listBox)))
	refresh()
}

// showNote swaps the window to a single note's detail view: title, block
// actions, and the block stacks with their committed annotations
// replayed on top.
func (a *App) showNote(noteID string) {
	note, err := a.db.GetNote(noteID)
	if err != nil {
		a.log.Error().Err(err).Str("note", noteID).Msg("load note")
		a.showNoteList()
		return
	}

	blocksBox := container.NewVBox()
	var refreshBlocks func()
	refreshBlocks = func() {
		blocks, err := a.db.ListBlocks(note.ID)
		if err != nil {
			a.log.Error().Err(err).Msg("list blocks")
			dialog.ShowError(err, a.win)
			return
		}
		blocksBox.Objects = nil
		for _, b := range blocks {
			block := b
			blocksBox.Add(a.blockRow(&block, refreshBlocks))
		}
		if len(blocks) == 0 {
			blocksBox.Add(widget.NewLabel("No blocks yet. Add an image or video."))
		}
		blocksBox.Refresh()
	}

	title := widget.NewEntry()
	title.SetText(note.Title)
	title.OnSubmitted = func(t string) {
		if t == "" || t == note.Title {
			return
		}
		if err := a.db.RenameNote(note.ID, t); err != nil {
			a.log.Error().Err(err).Msg("rename note")
			dialog.ShowError(err, a.win)
			return
		}
		note.Title = t
	}

	back := widget.NewButton("Back", a.showNoteList)

	addImage := widget.NewButton("Add image", func() {
		a.pickMedia(store.BlockImage, []string{".png", ".jpg", ".jpeg"}, note.ID, refreshBlocks)
	})
	addVideo := widget.NewButton("Add video", func() {
		a.pickMedia(store.BlockVideo, []string{".mp4", ".mov", ".webm"}, note.ID, refreshBlocks)
	})

	share := widget.NewButton("Share", func() {
		a.shareNote(note)
	})

	exportBtn := widget.NewButton("Export PDF", func() {
		a.exportNote(note)
	})

	deleteBtn := widget.NewButton("Delete note", func() {
		dialog.ShowConfirm("Delete note",
			fmt.Sprintf("Delete %q and all its blocks?", note.Title),
			func(ok bool) {
				if !ok {
					return
				}
				if err := a.db.DeleteNote(note.ID); err != nil {
					a.log.Error().Err(err).Msg("delete note")
					dialog.ShowError(err, a.win)
					return
				}
				a.showNoteList()
			}, a.win)
	})

	actions := container.NewHBox(back, layout.NewSpacer(),
		addImage, addVideo, share, exportBtn, deleteBtn)

	a.win.SetContent(container.NewBorder(
		container.NewVBox(title, actions), nil, nil, nil,
		container.NewVScroll(blocksBox)))
	refreshBlocks()
}

// blockRow builds one block's stack: media below, committed annotations
// replayed on top, plus the per-block actions.
func (a *App) blockRow(b *store.Block, refresh func()) fyne.CanvasObject {
	w, h := blockSurfaceSize(a.db, b)

	set, err := ink.UnmarshalSet(b.Annotations)
	if err != nil {
		a.log.Warn().Err(err).Str("block", b.ID).Msg("corrupt annotations, showing media bare")
		set = nil
	}

	stack := container.NewStack(
		blockMediaObject(a.db, b, w, h),
		NewReplayView(set, w, h),
	)

	annotate := widget.NewButton("Annotate", func() {
		a.showEditor(b)
	})
	remove := widget.NewButton("Remove", func() {
		if err := a.db.DeleteBlock(b.ID); err != nil {
			a.log.Error().Err(err).Str("block", b.ID).Msg("delete block")
			dialog.ShowError(err, a.win)
			return
		}
		refresh()
	})

	return container.NewVBox(
		container.NewCenter(stack),
		container.NewHBox(layout.NewSpacer(), annotate, remove, layout.NewSpacer()),
		widget.NewSeparator(),
	)
}

// showEditor swaps the window to the annotation editor for one block and
// returns to the note view when the session ends.
func (a *App) showEditor(b *store.Block) {
	ed, err := NewAnnotationEditor(a.db, b, a.log, func() {
		a.showNote(b.NoteID)
	})
	if err != nil {
		a.log.Error().Err(err).Str("block", b.ID).Msg("open editor")
		dialog.ShowError(err, a.win)
		return
	}
	a.win.SetContent(ed.Content())
}

// pickMedia runs the file-open dialog and imports the chosen file as a
// new block at the end of the note.
func (a *App) pickMedia(kind string, exts []string, noteID string, refresh func()) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.win)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		block, err := a.db.AddBlock(noteID, kind, path)
		if err != nil {
			a.log.Error().Err(err).Str("src", path).Msg("add block")
			dialog.ShowError(err, a.win)
			return
		}
		a.log.Info().Str("block", block.ID).Str("kind", kind).Msg("block added")
		refresh()
	}, a.win)
	fd.SetFilter(storage.NewExtensionFileFilter(exts))
	fd.Show()
}

// shareNote puts a plain-text summary of the note on the system
// clipboard.
func (a *App) shareNote(note *store.Note) {
	blocks, err := a.db.ListBlocks(note.ID)
	if err != nil {
		dialog.ShowError(err, a.win)
		return
	}
	text := fmt.Sprintf("%s (%d blocks, updated %s)",
		note.Title, len(blocks), note.UpdatedAt.Local().Format(time.RFC1123))
	a.win.Clipboard().SetContent(text)
	a.log.Debug().Str("note", note.ID).Msg("note summary copied")
}

// exportNote runs the save dialog and writes the flattened note PDF.
func (a *App) exportNote(note *store.Note) {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.win)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := export.NotePDF(path, a.db, note); err != nil {
			a.log.Error().Err(err).Str("note", note.ID).Msg("export pdf")
			dialog.ShowError(err, a.win)
			return
		}
		a.log.Info().Str("note", note.ID).Str("path", path).Msg("pdf exported")
	}, a.win)
	fd.SetFileName(note.Title + ".pdf")
	fd.Show()
}
