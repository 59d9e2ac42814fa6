package resume

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/hitoshi/resumake/internal/model"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Validator はセクションごとのJSONスキーマ検証器。
// スキーマは埋め込みファイルから起動時に1回コンパイルされる。
type Validator struct {
	schemas map[model.Section]*gojsonschema.Schema
}

// NewValidator は全セクションのスキーマをコンパイルして検証器を生成する。
// 埋め込みスキーマの不備はプログラミングエラーのためpanicする。
func NewValidator() *Validator {
	sections := append([]model.Section{model.SectionPersonalInfo}, model.ListSections()...)

	schemas := make(map[model.Section]*gojsonschema.Schema, len(sections))
	for _, section := range sections {
		raw, err := schemaFS.ReadFile(fmt.Sprintf("schemas/%s.json", section))
		if err != nil {
			panic(fmt.Sprintf("failed to read schema for section %s: %v", section, err))
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			panic(fmt.Sprintf("failed to compile schema for section %s: %v", section, err))
		}
		schemas[section] = schema
	}

	return &Validator{schemas: schemas}
}

// Validate はペイロードをセクションのスキーマで検証する。
// 検証失敗時は失敗内容を含むVALIDATION_FAILEDエラーを返す。
func (v *Validator) Validate(section model.Section, payload []byte) error {
	schema, ok := v.schemas[section]
	if !ok {
		return model.NewInvalidSectionError(string(section))
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return model.NewValidationFailedError(err.Error())
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, resultError := range result.Errors() {
		details = append(details, resultError.String())
	}
	return model.NewValidationFailedError(strings.Join(details, "; "))
}
