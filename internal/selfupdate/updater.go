package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/mod/semver"
)

// binaryName is the executable inside release archives.
const binaryName = "flashy"

const (
	maxArchiveSize   = 128 << 20
	maxChecksumsSize = 1 << 20
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
	ErrNoAsset       = errors.New("release has no archive for this platform")
)

// Stage names a step of Update.
type Stage string

const (
	StageCheck    Stage = "check"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageInstall  Stage = "install"
	StageDone     Stage = "done"
)

// UpdateInput selects the release to install. An empty TargetVersion
// means the latest release, which must be newer than CurrentVersion.
// A pinned TargetVersion is installed even when it is older.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

type UpdateProgress struct {
	Stage   Stage
	Message string
}

// Update downloads the release archive for this platform, checks it
// against the release's checksums file and swaps it in for the running
// executable.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if !semver.IsValid(canonical(input.CurrentVersion)) {
		return ErrDevBuild
	}

	progress(UpdateProgress{Stage: StageCheck, Message: "Looking for a Flashy release..."})
	rel, err := c.fetchRelease(ctx, input.TargetVersion)
	if err != nil {
		return fmt.Errorf("check for updates: %w", err)
	}
	if input.TargetVersion == "" && semver.Compare(canonical(rel.TagName), canonical(input.CurrentVersion)) <= 0 {
		return ErrAlreadyLatest
	}

	archiveName, err := archiveFor(rel.TagName, runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}
	archiveURL, ok := rel.assetURL(archiveName)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoAsset, archiveName)
	}
	checksumsURL, ok := rel.assetURL(checksumsFor(rel.TagName))
	if !ok {
		return fmt.Errorf("%w: %s has no checksums file", ErrChecksum, rel.TagName)
	}

	progress(UpdateProgress{Stage: StageDownload, Message: fmt.Sprintf("Downloading %s...", archiveName)})
	archive, err := c.fetch(ctx, archiveURL, maxArchiveSize)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}
	sums, err := c.fetch(ctx, checksumsURL, maxChecksumsSize)
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}

	progress(UpdateProgress{Stage: StageVerify, Message: "Verifying checksum..."})
	if err := verify(archive, sums, archiveName); err != nil {
		return err
	}

	progress(UpdateProgress{Stage: StageInstall, Message: "Installing..."})
	bin, err := unpack(archive, archiveName)
	if err != nil {
		return fmt.Errorf("unpack %s: %w", archiveName, err)
	}
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if err := replaceExecutable(target, bin); err != nil {
		return fmt.Errorf("install: %w", err)
	}

	progress(UpdateProgress{Stage: StageDone, Message: fmt.Sprintf("Flashy is now at %s", rel.TagName)})
	return nil
}

// archiveFor names the release archive for a platform, following the
// release pipeline's flashy_<version>_<os>_<arch> layout.
func archiveFor(tag, goos, goarch string) (string, error) {
	if goarch != "amd64" && goarch != "arm64" {
		return "", fmt.Errorf("unsupported platform %s/%s", goos, goarch)
	}
	var ext string
	switch goos {
	case "linux", "darwin":
		ext = ".tar.gz"
	case "windows":
		ext = ".zip"
	default:
		return "", fmt.Errorf("unsupported platform %s/%s", goos, goarch)
	}
	return fmt.Sprintf("%s_%s_%s_%s%s", binaryName, strings.TrimPrefix(tag, "v"), goos, goarch, ext), nil
}

func checksumsFor(tag string) string {
	return fmt.Sprintf("%s_%s_checksums.txt", binaryName, strings.TrimPrefix(tag, "v"))
}

// fetch GETs url and reads at most limit bytes of the body.
func (c *Checker) fetch(ctx context.Context, url string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%s is larger than %d bytes", url, limit)
	}
	return data, nil
}

// verify checks data against the entry for name in a sha256sum-style
// checksums file ("<hex>  <name>", or "<hex> *<name>" in binary mode).
func verify(data, sums []byte, name string) error {
	sc := bufio.NewScanner(bytes.NewReader(sums))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) != 2 || strings.TrimPrefix(fields[1], "*") != name {
			continue
		}
		sum := sha256.Sum256(data)
		if got := hex.EncodeToString(sum[:]); !strings.EqualFold(got, fields[0]) {
			return fmt.Errorf("%w: %s: expected %s, got %s", ErrChecksum, name, fields[0], got)
		}
		return nil
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read checksums: %w", err)
	}
	return fmt.Errorf("%w: %s is not listed", ErrChecksum, name)
}

// unpack returns the flashy executable from a release archive.
func unpack(archive []byte, archiveName string) ([]byte, error) {
	if strings.HasSuffix(archiveName, ".zip") {
		return unpackZip(archive, binaryName+".exe")
	}
	return unpackTarGz(archive, binaryName)
}

func unpackTarGz(archive []byte, name string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, err
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s not found in archive", name)
		}
		if err != nil {
			return nil, err
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == name {
			return io.ReadAll(io.LimitReader(tr, maxArchiveSize))
		}
	}
}

func unpackZip(archive []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, err
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || filepath.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(io.LimitReader(rc, maxArchiveSize))
	}
	return nil, fmt.Errorf("%s not found in archive", name)
}

// replaceExecutable writes bin next to target and renames it over
// target, keeping target's permissions. Windows cannot replace a running
// executable, so the old one is first moved aside to target+".old".
func replaceExecutable(target string, bin []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+binaryName+"-update-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(bin); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return err
	}

	if runtime.GOOS == "windows" {
		old := target + ".old"
		_ = os.Remove(old)
		if err := os.Rename(target, old); err != nil {
			return err
		}
	}
	return os.Rename(tmp.Name(), target)
}
