package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/orgball2608/mention-pulse/internal/domain"
	"github.com/orgball2608/mention-pulse/pkg/errors"
)

// readBatch loads a batch file. A bare JSON array is accepted as the posts of
// subject, or of the file name without extension when subject is empty.
func readBatch(path, subject string) (domain.Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Batch{}, errors.WrapWithCode(err, "batch_file", "open batch "+path)
	}
	defer f.Close()

	if subject == "" {
		subject = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return decodeBatch(f, subject)
}

func decodeBatch(r io.Reader, subject string) (domain.Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.Batch{}, errors.Wrap(err, "read batch")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var posts []domain.RawPost
		if err := dec.Decode(&posts); err != nil {
			return domain.Batch{}, errors.Wrap(fmt.Errorf("%w: %v", errors.ErrInvalidInput, err), "decode batch")
		}
		return domain.Batch{Subject: subject, Posts: posts}, nil
	}

	var batch domain.Batch
	if err := dec.Decode(&batch); err != nil {
		return domain.Batch{}, errors.Wrap(fmt.Errorf("%w: %v", errors.ErrInvalidInput, err), "decode batch")
	}
	if batch.Subject == "" {
		batch.Subject = subject
	}
	return batch, nil
}
