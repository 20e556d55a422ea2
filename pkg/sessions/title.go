package sessions

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/grovetools/ccsessions/errors"
)

type customTitleRecord struct {
	Type        string `json:"type"`
	CustomTitle string `json:"customTitle"`
	SessionID   string `json:"sessionId"`
}

// AppendTitle renames a session by appending a custom-title record to its
// log, the same record the client writes for /title.
func AppendTitle(path, id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.InvalidInput("title must not be empty")
	}

	line, err := json.Marshal(customTitleRecord{
		Type:        recordCustomTitle,
		CustomTitle: title,
		SessionID:   id,
	})
	if err != nil {
		return errors.TitleWrite(path, err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND, 0)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.SessionMissing(id).WithDetail("path", path)
		}
		return errors.TitleWrite(path, err)
	}
	defer f.Close()

	needsNewline, err := lacksTrailingNewline(f)
	if err != nil {
		return errors.TitleWrite(path, err)
	}
	if needsNewline {
		line = append([]byte{'\n'}, line...)
	}
	line = append(line, '\n')

	if _, err := f.Write(line); err != nil {
		return errors.TitleWrite(path, err)
	}
	return nil
}

// Renamer persists titles through AppendTitle.
type Renamer struct{}

// Rename implements the browser's Renamer.
func (Renamer) Rename(path, id, title string) error {
	return AppendTitle(path, id, title)
}

func lacksTrailingNewline(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return false, nil
	}
	buf := make([]byte, 1)
	if _, err := f.ReadAt(buf, info.Size()-1); err != nil && err != io.EOF {
		return false, err
	}
	return buf[0] != '\n', nil
}
