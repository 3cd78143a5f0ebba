// Package mrpack drives the Archive Reader (C1), Hash Verifier (C2), and
// the Mrpack Installer (C7): unpacking a .mrpack, fetching every
// referenced file with hash verification, and projecting the result
// into an instance's content root.
package mrpack

import (
	"archive/zip"
	"io"
	"os"
	"strings"

	"github.com/Jeffail/gabs"

	"instanceforge/internal/ierr"
	"instanceforge/pkg/instance"
)

const overridesPrefix = "overrides/"

const indexEntryName = "modrinth.index.json"

// Archive wraps a .mrpack ZIP file, grounded on ziphelper.go's ZipHelper.
// Entry lookups by name scan the archive's file list each time; nothing
// is cached.
type Archive struct {
	zr *zip.ReadCloser
}

// Open opens path as a ZIP archive.
func Open(path string) (*Archive, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, ierr.Wrap(ierr.KindFilesystem, err, "open archive %s", path)
	}
	return &Archive{zr: zr}, nil
}

// Close releases the underlying file.
func (a *Archive) Close() error {
	return a.zr.Close()
}

func (a *Archive) find(name string) *zip.File {
	for _, f := range a.zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// ReadFile reads a named entry fully into memory.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	f := a.find(name)
	if f == nil {
		return nil, ierr.New(ierr.KindValidation, "entry not found in archive: %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, ierr.Wrap(ierr.KindFilesystem, err, "open entry %s", name)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// ReadIndex reads and parses modrinth.index.json.
func (a *Archive) ReadIndex() (*instance.MrpackIndex, error) {
	data, err := a.ReadFile(indexEntryName)
	if err != nil {
		return nil, ierr.Wrap(ierr.KindValidation, err, "missing %s", indexEntryName)
	}
	return parseIndex(data)
}

// ExtractOverrides streams every entry whose path begins with
// "overrides/" to <destRoot>/<path-minus-overrides-prefix>, creating
// intermediate directories. Entries with an escaping name are rejected.
func (a *Archive) ExtractOverrides(destRoot string) error {
	for _, f := range a.zr.File {
		if !strings.HasPrefix(f.Name, overridesPrefix) {
			continue
		}
		rel := strings.TrimPrefix(f.Name, overridesPrefix)
		if rel == "" || strings.HasSuffix(f.Name, "/") {
			continue
		}
		if err := a.extractEntry(f, destRoot, rel); err != nil {
			return err
		}
	}
	return nil
}

// ExtractAll extracts every entry in the archive verbatim into destDir,
// the operation a vanilla install needs for native-library JARs. Nothing
// in this module calls it; install-vanilla is not implemented here.
func (a *Archive) ExtractAll(destDir string) error {
	for _, f := range a.zr.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		if err := a.extractEntry(f, destDir, f.Name); err != nil {
			return err
		}
	}
	return nil
}

func (a *Archive) extractEntry(f *zip.File, destRoot, rel string) error {
	target, err := SafeJoin(destRoot, rel)
	if err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return ierr.Wrap(ierr.KindFilesystem, err, "open entry %s", f.Name)
	}
	defer rc.Close()

	if err := writeFile(target, rc); err != nil {
		return err
	}
	return nil
}

func writeFile(target string, r io.Reader) error {
	if err := os.MkdirAll(dirOf(target), 0o755); err != nil {
		return ierr.Wrap(ierr.KindFilesystem, err, "create directories for %s", target)
	}
	out, err := os.Create(target)
	if err != nil {
		return ierr.Wrap(ierr.KindFilesystem, err, "create %s", target)
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		return ierr.Wrap(ierr.KindFilesystem, err, "write %s", target)
	}
	return nil
}

func dirOf(p string) string {
	i := strings.LastIndexAny(p, `/\`)
	if i < 0 {
		return "."
	}
	return p[:i]
}

func parseIndex(data []byte) (*instance.MrpackIndex, error) {
	doc, err := gabs.ParseJSON(data)
	if err != nil {
		return nil, ierr.Wrap(ierr.KindValidation, err, "parse %s", indexEntryName)
	}

	idx := &instance.MrpackIndex{
		Dependencies: map[string]string{},
	}

	if fv, ok := doc.Path("formatVersion").Data().(float64); ok {
		idx.FormatVersion = int(fv)
	}
	if s, ok := doc.Path("game").Data().(string); ok {
		idx.Game = s
	}
	if s, ok := doc.Path("versionId").Data().(string); ok {
		idx.VersionID = s
	}
	if s, ok := doc.Path("name").Data().(string); ok {
		idx.Name = s
	}
	if s, ok := doc.Path("summary").Data().(string); ok {
		idx.Summary = s
	}

	if deps, err := doc.Path("dependencies").ChildrenMap(); err == nil {
		for k, v := range deps {
			if s, ok := v.Data().(string); ok {
				idx.Dependencies[k] = s
			}
		}
	}

	files, _ := doc.Path("files").Children()
	seen := map[string]bool{}
	for _, fc := range files {
		mf, err := parseFileEntry(fc)
		if err != nil {
			return nil, err
		}
		key := NormalizedPathKey(mf.Path)
		if seen[key] {
			continue
		}
		seen[key] = true
		idx.Files = append(idx.Files, mf)
	}

	return idx, nil
}

func parseFileEntry(fc *gabs.Container) (instance.MrpackFile, error) {
	var mf instance.MrpackFile
	p, _ := fc.Path("path").Data().(string)
	mf.Path = p

	if p == "" {
		return mf, ierr.New(ierr.KindValidation, "mrpack file entry missing path")
	}
	if !hasAllowedPrefix(p) {
		return mf, ierr.New(ierr.KindValidation, "mrpack file path has unexpected prefix: %s", p)
	}
	if _, err := SafeJoin("/", p); err != nil {
		return mf, err
	}

	mf.Hashes = map[string]string{}
	if hashes, err := fc.Path("hashes").ChildrenMap(); err == nil {
		for k, v := range hashes {
			if s, ok := v.Data().(string); ok {
				mf.Hashes[k] = s
			}
		}
	}

	if env := fc.Path("env"); env != nil && env.Data() != nil {
		e := &instance.MrpackEnv{}
		if s, ok := env.Path("client").Data().(string); ok {
			e.Client = s
		}
		if s, ok := env.Path("server").Data().(string); ok {
			e.Server = s
		}
		mf.Env = e
	}

	downloads, _ := fc.Path("downloads").Children()
	for _, d := range downloads {
		if s, ok := d.Data().(string); ok {
			mf.Downloads = append(mf.Downloads, s)
		}
	}
	if len(mf.Downloads) == 0 {
		return mf, ierr.New(ierr.KindValidation, "mrpack file %s has no download mirrors", p)
	}

	if sz, ok := fc.Path("fileSize").Data().(float64); ok {
		mf.FileSize = int64(sz)
	}

	return mf, nil
}

func hasAllowedPrefix(p string) bool {
	for _, prefix := range []string{"mods/", "config/", "resourcepacks/", "shaderpacks/", "saves/"} {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// NormalizedPathKey is the deduplication key for MrpackIndex.Files:
// a path that collides with another file's key is a duplicate, and the
// first occurrence wins (spec.md §3 invariant).
func NormalizedPathKey(p string) string {
	return strings.ToLower(strings.TrimSuffix(p, "/"))
}
