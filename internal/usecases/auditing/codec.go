package auditing

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/budget-guard-api/internal/domain"
	"github.com/vfg2006/budget-guard-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultPrefix = "audit"

// Serialise gera o JSON indentado de auditoria do snapshot
func Serialise(snapshot *domain.AnalysisSnapshot) ([]byte, error) {
	data, err := json.MarshalIndent(NewDocument(snapshot), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "erro ao serializar snapshot")
	}
	return data, nil
}

// Deserialise reconstrói o snapshot a partir do JSON de auditoria
func Deserialise(data []byte) (*domain.AnalysisSnapshot, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAudit, err)
	}
	return doc.Snapshot()
}

// SaveToFile grava o snapshot criando os diretórios necessários
func SaveToFile(snapshot *domain.AnalysisSnapshot, path string) error {
	data, err := Serialise(snapshot)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "erro ao criar diretório de auditoria %s", filepath.Dir(path))
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "erro ao gravar arquivo de auditoria %s", path)
	}

	return nil
}

func LoadFromFile(path string) (*domain.AnalysisSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrAuditFileNotFound, path)
		}
		return nil, errors.Wrapf(err, "erro ao ler arquivo de auditoria %s", path)
	}

	return Deserialise(data)
}

// SnapshotFilename retorna prefix_YYYY-MM-DD_HHMMSS_<id>.json.
// O id separa snapshots gravados no mesmo segundo.
func SnapshotFilename(prefix string, snapshot *domain.AnalysisSnapshot) string {
	name := strings.TrimSuffix(GenerateFilename(prefix, snapshot.Timestamp), ".json")
	if snapshot.ID != "" {
		name += "_" + snapshot.ID
	}
	return name + ".json"
}

// GenerateFilename retorna prefix_YYYY-MM-DD_HHMMSS.json
func GenerateFilename(prefix string, now time.Time) string {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return fmt.Sprintf("%s_%s.json", prefix, utils.TimestampSuffix(now))
}
