// Package scaffold generates per-framework endpoint files that serve the
// generated artifacts, and detects the conventional output directory of a
// project. It is thin glue around the core pipeline: nothing here touches
// the canonical text or the seen index.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Framework identifies a supported web framework.
type Framework string

const (
	NextJS    Framework = "nextjs"
	Express   Framework = "express"
	Nuxt      Framework = "nuxt"
	SvelteKit Framework = "sveltekit"
	Astro     Framework = "astro"
)

// Frameworks returns the supported framework names in stable order.
func Frameworks() []string {
	names := []string{string(NextJS), string(Express), string(Nuxt), string(SvelteKit), string(Astro)}
	sort.Strings(names)
	return names
}

// outputDirCandidates are conventional static-asset directories, checked in
// order.
var outputDirCandidates = []string{"public", "static", "dist", "www"}

// DetectOutputDir returns the directory inside projectRoot where the
// artifacts should live. It is a pure lookup over conventional static-asset
// directories, falling back to public/ when none exists yet.
func DetectOutputDir(projectRoot string) string {
	for _, candidate := range outputDirCandidates {
		dir := filepath.Join(projectRoot, candidate)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return filepath.Join(projectRoot, outputDirCandidates[0])
}

// endpointFile is one file a framework scaffold emits.
type endpointFile struct {
	relPath string
	content string
}

// Generate writes the endpoint files for the given framework under
// projectRoot and returns the paths written. Existing files are not
// overwritten; they are skipped and omitted from the returned list.
func Generate(framework Framework, projectRoot string) ([]string, error) {
	files, ok := endpointFiles[framework]
	if !ok {
		return nil, fmt.Errorf("unknown framework %q (supported: %v)", framework, Frameworks())
	}

	var written []string
	for _, f := range files {
		path := filepath.Join(projectRoot, filepath.FromSlash(f.relPath))
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return written, fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(f.content), 0o644); err != nil {
			return written, fmt.Errorf("writing %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// endpointFiles maps each framework to the endpoint sources it scaffolds.
// Every endpoint simply serves the generated updates.json from the static
// output directory; the .txt and .rss artifacts are served as plain static
// assets by the frameworks themselves.
var endpointFiles = map[Framework][]endpointFile{
	NextJS: {{
		relPath: "app/api/updates/route.ts",
		content: `import { promises as fs } from "fs";
import path from "path";

export async function GET() {
  const file = path.join(process.cwd(), "public", "updates.json");
  const body = await fs.readFile(file, "utf-8");
  return new Response(body, {
    headers: { "content-type": "application/json" },
  });
}
`,
	}},
	Express: {{
		relPath: "routes/updates.js",
		content: `const fs = require("fs/promises");
const path = require("path");
const express = require("express");

const router = express.Router();

router.get("/updates", async (_req, res, next) => {
  try {
    const file = path.join(process.cwd(), "public", "updates.json");
    res.type("application/json").send(await fs.readFile(file, "utf-8"));
  } catch (err) {
    next(err);
  }
});

module.exports = router;
`,
	}},
	Nuxt: {{
		relPath: "server/api/updates.get.ts",
		content: `import { promises as fs } from "fs";
import path from "path";

export default defineEventHandler(async () => {
  const file = path.join(process.cwd(), "public", "updates.json");
  return JSON.parse(await fs.readFile(file, "utf-8"));
});
`,
	}},
	SvelteKit: {{
		relPath: "src/routes/api/updates/+server.ts",
		content: `import { promises as fs } from "fs";
import path from "path";

export async function GET() {
  const file = path.join(process.cwd(), "static", "updates.json");
  const body = await fs.readFile(file, "utf-8");
  return new Response(body, {
    headers: { "content-type": "application/json" },
  });
}
`,
	}},
	Astro: {{
		relPath: "src/pages/api/updates.ts",
		content: `import { promises as fs } from "fs";
import path from "path";

export async function GET() {
  const file = path.join(process.cwd(), "public", "updates.json");
  const body = await fs.readFile(file, "utf-8");
  return new Response(body, {
    headers: { "content-type": "application/json" },
  });
}
`,
	}},
}
