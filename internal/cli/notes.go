package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shindearyan179/notesnap/internal/common"
	"github.com/shindearyan179/notesnap/internal/models"
)

func (a *App) promptNoteID() (int64, bool) {
	text, err := GetSimpleText(a.reader, "Note id", os.Stdout)
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		fmt.Println("Note id must be a number.")
		return 0, false
	}
	return id, true
}

func printNoteLine(n *models.Note) {
	line := fmt.Sprintf("[%d] %s", n.ID, n.Title)
	if n.Tags != "" {
		line += fmt.Sprintf(" (%s)", n.Tags)
	}
	fmt.Println(line)
}

func printNote(n *models.Note) {
	fmt.Printf("[%d] %s\n", n.ID, n.Title)
	if n.Tags != "" {
		fmt.Printf("Tags: %s\n", n.Tags)
	}
	fmt.Printf("Updated: %s\n\n", n.UpdatedAt.Format("2006-01-02 15:04"))
	fmt.Println(n.Content)
}

func (a *App) AddNote(ctx context.Context) error {
	if !a.requireLogin(ctx) {
		return nil
	}

	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content", os.Stdout)
	if err != nil {
		return err
	}
	tags, err := GetSimpleText(a.reader, "Tags (comma separated, optional)", os.Stdout)
	if err != nil {
		return err
	}

	note, err := a.notes.Create(ctx, a.user.ID, title, content, tags)
	if err != nil {
		fmt.Println("Could not save the note.")
		return err
	}

	fmt.Printf("Note %d saved.\n", note.ID)
	return nil
}

func (a *App) List(ctx context.Context) error {
	if !a.requireLogin(ctx) {
		return nil
	}

	tag, err := GetSimpleText(a.reader, "Filter by tag (empty for all)", os.Stdout)
	if err != nil {
		return err
	}

	list, err := a.notes.List(ctx, a.user.ID, tag)
	if err != nil {
		fmt.Println("Could not list notes.")
		return err
	}
	if len(list) == 0 {
		fmt.Println("No notes.")
		return nil
	}

	for _, n := range list {
		printNoteLine(n)
	}
	return nil
}

func (a *App) Show(ctx context.Context) error {
	if !a.requireLogin(ctx) {
		return nil
	}

	id, ok := a.promptNoteID()
	if !ok {
		return nil
	}

	note, err := a.notes.Get(ctx, a.user.ID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Println("No such note.")
			return nil
		}
		fmt.Println("Could not load the note.")
		return err
	}

	printNote(note)
	return nil
}

// EditNote prompts for replacement values; an empty line keeps the current
// one. Only the supplied fields are written.
func (a *App) EditNote(ctx context.Context) error {
	if !a.requireLogin(ctx) {
		return nil
	}

	id, ok := a.promptNoteID()
	if !ok {
		return nil
	}

	title, err := GetSimpleText(a.reader, "New title (empty line keeps current)", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "New content (empty keeps current)", os.Stdout)
	if err != nil {
		return err
	}
	tags, err := GetSimpleText(a.reader, "New tags (empty line keeps current)", os.Stdout)
	if err != nil {
		return err
	}

	var patch models.NotePatch
	if title != "" {
		patch.Title = &title
	}
	if content != "" {
		patch.Content = &content
	}
	if tags != "" {
		patch.Tags = &tags
	}
	if patch.Empty() {
		fmt.Println("Nothing to change.")
		return nil
	}

	updated, err := a.notes.Edit(ctx, a.user.ID, id, patch)
	if err != nil {
		fmt.Println("Could not update the note.")
		return err
	}
	if !updated {
		fmt.Println("No such note.")
		return nil
	}

	fmt.Println("Note updated.")
	return nil
}

func (a *App) DeleteNote(ctx context.Context) error {
	if !a.requireLogin(ctx) {
		return nil
	}

	id, ok := a.promptNoteID()
	if !ok {
		return nil
	}

	deleted, err := a.notes.Delete(ctx, a.user.ID, id)
	if err != nil {
		fmt.Println("Could not delete the note.")
		return err
	}
	if !deleted {
		fmt.Println("No such note.")
		return nil
	}

	fmt.Println("Note deleted.")
	return nil
}

func (a *App) Search(ctx context.Context) error {
	if !a.requireLogin(ctx) {
		return nil
	}

	query, err := GetSimpleText(a.reader, "Search for", os.Stdout)
	if err != nil {
		return err
	}

	list, err := a.notes.Search(ctx, a.user.ID, query)
	if err != nil {
		fmt.Println("Search failed.")
		return err
	}
	if len(list) == 0 {
		fmt.Println("Nothing found.")
		return nil
	}

	for _, n := range list {
		printNoteLine(n)
	}
	return nil
}

func (a *App) Export(ctx context.Context) error {
	if !a.requireLogin(ctx) {
		return nil
	}

	path, err := GetSimpleText(a.reader, "Export file path (empty for default)", os.Stdout)
	if err != nil {
		return err
	}
	if path == "" {
		path = filepath.Join(a.config.DataDir, fmt.Sprintf("export_%s.csv", a.user.Username))
	}

	exported, err := a.notes.Export(ctx, a.user.ID, path)
	if err != nil {
		fmt.Println("Export failed.")
		return err
	}
	if !exported {
		fmt.Println("Nothing to export.")
		return nil
	}

	fmt.Printf("Notes exported to %s.\n", path)
	return nil
}
