package pdf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/formdesk/server/internal/models"
)

// ErrNoBasePDF is returned for forms without any pdf file entries; the
// first entry is the base document everything else is appended to.
var ErrNoBasePDF = errors.New("form has no pdf files")

// Assembler merges a form's base PDF with its conditional attachments and
// fills the named form fields from a field map.
type Assembler struct {
	assetsDir string
	conf      *model.Configuration
}

func NewAssembler(assetsDir string) *Assembler {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Assembler{assetsDir: assetsDir, conf: conf}
}

// Render produces the filled PDF for form and writes it to w. The output
// is buffered internally and only written after every merge and fill step
// succeeded, so the caller never receives a partial document.
func (a *Assembler) Render(form *models.Form, fieldMap map[string]any, w io.Writer) error {
	if len(form.PdfFiles) == 0 {
		return ErrNoBasePDF
	}

	paths := []string{a.assetPath(form.PdfFiles[0].URL)}
	for _, pf := range form.PdfFiles[1:] {
		if pf.Condition.Matches(form.Fields) {
			paths = append(paths, a.assetPath(pf.URL))
		}
	}

	files := make([]io.ReadSeeker, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("open pdf asset: %w", err)
		}
		defer f.Close()
		files = append(files, f)
	}

	var merged bytes.Buffer
	if err := api.MergeRaw(files, &merged, false, a.conf); err != nil {
		return fmt.Errorf("merge pdf files: %w", err)
	}

	fill, err := fillData(fieldMap)
	if err != nil {
		return err
	}
	var filled bytes.Buffer
	if err := api.FillForm(bytes.NewReader(merged.Bytes()), bytes.NewReader(fill), &filled, a.conf); err != nil {
		return fmt.Errorf("fill form fields: %w", err)
	}

	_, err = w.Write(filled.Bytes())
	return err
}

func (a *Assembler) assetPath(url string) string {
	return filepath.Join(a.assetsDir, filepath.FromSlash(url))
}

// fillData builds the JSON document pdfcpu's form fill expects: string
// values become text fields, booleans become checkboxes. Keys are sorted
// for deterministic output.
func fillData(fieldMap map[string]any) ([]byte, error) {
	type textField struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	type checkBox struct {
		Name  string `json:"name"`
		Value bool   `json:"value"`
	}

	names := make([]string, 0, len(fieldMap))
	for name := range fieldMap {
		names = append(names, name)
	}
	sort.Strings(names)

	var textFields []textField
	var checkBoxes []checkBox
	for _, name := range names {
		switch v := fieldMap[name].(type) {
		case bool:
			checkBoxes = append(checkBoxes, checkBox{Name: name, Value: v})
		case string:
			textFields = append(textFields, textField{Name: name, Value: v})
		default:
			textFields = append(textFields, textField{Name: name, Value: fmt.Sprint(v)})
		}
	}

	return json.Marshal(map[string]any{
		"forms": []map[string]any{{
			"textfield": textFields,
			"checkbox":  checkBoxes,
		}},
	})
}
