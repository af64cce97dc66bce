package checks

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	exif "github.com/dsoprea/go-exif/v3"

	"github.com/distlint/distlint/internal/config"
	"github.com/distlint/distlint/internal/discovery"
	"github.com/distlint/distlint/internal/htmldoc"
	"github.com/distlint/distlint/internal/model"
)

// exifSensitiveTags are EXIF tags worth flagging on a published image,
// with a short category used in the finding message. GPS and author
// tags identify people and places; make/model/software identify the
// toolchain.
var exifSensitiveTags = map[string]string{
	"GPSLatitude":      "GPS coordinates",
	"GPSLongitude":     "GPS coordinates",
	"GPSLatitudeRef":   "GPS coordinates",
	"GPSLongitudeRef":  "GPS coordinates",
	"Make":             "camera information",
	"Model":            "camera information",
	"SerialNumber":     "device serial number",
	"BodySerialNumber": "device serial number",
	"Artist":           "author information",
	"Author":           "author information",
	"Copyright":        "author information",
	"Software":         "software information",
}

// exifImageExtensions are the image formats that can carry EXIF data.
var exifImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".tif":  {},
	".tiff": {},
	".heic": {},
	".webp": {},
	".png":  {},
}

// imageExtensions are formats counted against the image size budget.
var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
	".avif": {},
	".svg":  {},
}

// AssetsCheck validates static asset references: that referenced files
// exist, that images declare dimensions, that images stay under the
// configured size budget, and that published images carry no sensitive
// EXIF metadata.
type AssetsCheck struct {
	workers int
}

// Name returns the suite name.
func (c *AssetsCheck) Name() string { return "assets" }

// Enabled reports whether any asset sub-check is turned on.
func (c *AssetsCheck) Enabled(rules *config.Rules) bool {
	a := rules.Assets
	return a.CheckBrokenAssets || a.CheckImageDimensions || a.CheckEXIFMetadata || a.MaxImageSizeKB > 0
}

// Run checks asset references page by page, then scans referenced
// image files once each for size and EXIF findings.
func (c *AssetsCheck) Run(ctx context.Context, index *discovery.SiteIndex, rules *config.Rules) []model.Finding {
	// processed dedupes file-level scans across pages: many pages can
	// reference the same image but it only needs one finding.
	var mu sync.Mutex
	processed := make(map[string]struct{})

	findings := forEachPage(ctx, index, c.workers, func(page *model.Page) []model.Finding {
		return c.checkPage(page, index, rules, &mu, processed)
	})
	return findings
}

func (c *AssetsCheck) checkPage(page *model.Page, index *discovery.SiteIndex, rules *config.Rules, mu *sync.Mutex, processed map[string]struct{}) []model.Finding {
	doc, err := htmldoc.Parse(page.Content)
	if err != nil {
		return nil
	}

	var findings []model.Finding

	type ref struct {
		value    string
		selector string
	}
	var refs []ref

	for _, img := range doc.SelectWithAttr("img", "src") {
		refs = append(refs, ref{img.Attr("src"), "img[src]"})
	}
	for _, script := range doc.SelectWithAttr("script", "src") {
		refs = append(refs, ref{script.Attr("src"), "script[src]"})
	}
	for _, link := range doc.SelectAttrEqual("link", "rel", "stylesheet") {
		if href := link.Attr("href"); href != "" {
			refs = append(refs, ref{href, "link[href]"})
		}
	}
	doc.Walk(func(el htmldoc.Element) {
		srcset := el.Attr("srcset")
		if srcset == "" {
			return
		}
		for _, entry := range strings.Split(srcset, ",") {
			if src := strings.Fields(strings.TrimSpace(entry)); len(src) > 0 {
				refs = append(refs, ref{src[0], "srcset"})
			}
		}
	})

	for _, r := range refs {
		if !isLocalAsset(r.value) {
			continue
		}
		assetPath := resolveAssetPath(index.DistPath, page.RelPath, r.value)

		info, statErr := os.Stat(assetPath)
		if statErr != nil {
			if rules.Assets.CheckBrokenAssets {
				findings = append(findings, model.NewFinding(
					"assets/broken",
					page.RelPath,
					fmt.Sprintf("%s='%s'", r.selector, r.value),
					fmt.Sprintf("Broken asset reference: '%s'", r.value),
				))
			}
			continue
		}

		// File-level scans run once per asset regardless of how many
		// pages reference it.
		mu.Lock()
		_, seen := processed[assetPath]
		if !seen {
			processed[assetPath] = struct{}{}
		}
		mu.Unlock()
		if seen {
			continue
		}

		ext := strings.ToLower(filepath.Ext(assetPath))

		if max := rules.Assets.MaxImageSizeKB; max > 0 {
			if _, isImage := imageExtensions[ext]; isImage {
				if sizeKB := info.Size() / 1024; sizeKB > int64(max) {
					findings = append(findings, model.NewFinding(
						"assets/large-image",
						page.RelPath,
						fmt.Sprintf("%s='%s'", r.selector, r.value),
						fmt.Sprintf("Image is %dKB (max: %dKB)", sizeKB, max),
					))
				}
			}
		}

		if rules.Assets.CheckEXIFMetadata {
			if _, canCarry := exifImageExtensions[ext]; canCarry {
				findings = append(findings, checkEXIF(page, assetPath, r.value)...)
			}
		}
	}

	if rules.Assets.CheckImageDimensions {
		for _, img := range doc.Select("img") {
			if img.HasAttr("width") && img.HasAttr("height") {
				continue
			}
			src := img.Attr("src")
			if src == "" {
				src = "(unknown)"
			}
			findings = append(findings, model.NewFinding(
				"assets/img-dimensions",
				page.RelPath,
				fmt.Sprintf("img[src='%s']", src),
				fmt.Sprintf("Image missing width/height attributes: src='%s'", src),
			))
		}
	}

	return findings
}

// checkEXIF scans one local image for sensitive EXIF metadata.
// One finding is emitted per tag category, not per tag, so a photo
// with full GPS data produces a single location finding.
func checkEXIF(page *model.Page, assetPath, src string) []model.Finding {
	data, err := os.ReadFile(assetPath) //nolint:gosec // Path is inside the audited dist directory
	if err != nil {
		return nil
	}

	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return nil
	}
	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return nil
	}

	categories := make(map[string]struct{})
	for _, entry := range entries {
		if category, ok := exifSensitiveTags[entry.TagName]; ok {
			categories[category] = struct{}{}
		}
	}

	var findings []model.Finding
	for category := range categories {
		findings = append(findings, model.NewFinding(
			"assets/exif-metadata",
			page.RelPath,
			fmt.Sprintf("img[src='%s']", src),
			fmt.Sprintf("Image '%s' contains %s in EXIF metadata", src, category),
		))
	}
	return findings
}

// isLocalAsset reports whether a src/href points into the dist
// directory rather than an external or inline resource.
func isLocalAsset(src string) bool {
	return src != "" &&
		!strings.HasPrefix(src, "http://") &&
		!strings.HasPrefix(src, "https://") &&
		!strings.HasPrefix(src, "//") &&
		!strings.HasPrefix(src, "data:")
}

// resolveAssetPath maps an asset reference to a filesystem path.
// Root-relative references resolve against dist; others against the
// referencing page's directory.
func resolveAssetPath(distPath, pageRelPath, src string) string {
	clean := src
	if i := strings.IndexAny(clean, "?#"); i >= 0 {
		clean = clean[:i]
	}

	var rel string
	if strings.HasPrefix(clean, "/") {
		rel = strings.TrimPrefix(clean, "/")
	} else {
		rel = path.Join(path.Dir(pageRelPath), clean)
	}
	return filepath.Join(distPath, filepath.FromSlash(rel))
}
