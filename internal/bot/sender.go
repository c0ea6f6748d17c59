package bot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Sender определяет основной интерфейс для вывода игроку.
type Sender interface {
	// Message выводит текстовое сообщение.
	Message(text string) error

	// Document сохраняет файл и возвращает путь к нему.
	Document(fileName string, data []byte) (string, error)
}

// TerminalSender пишет сообщения в терминал, а документы в каталог dir.
type TerminalSender struct {
	w   io.Writer
	dir string
	mu  sync.Mutex
}

// NewTerminalSender создает новый объект структуры TerminalSender.
func NewTerminalSender(w io.Writer, dir string) *TerminalSender {
	return &TerminalSender{w: w, dir: dir}
}

func (s *TerminalSender) Message(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := fmt.Fprintln(s.w, text)
	return err
}

func (s *TerminalSender) Document(fileName string, data []byte) (string, error) {
	path := filepath.Join(s.dir, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}

	return path, nil
}
