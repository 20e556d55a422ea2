// Package demo provides static session collections for exercising the
// browser without real logs. Nothing here touches the filesystem.
package demo

import (
	"fmt"
	"sort"
	"time"

	"github.com/grovetools/ccsessions/pkg/labels"
	"github.com/grovetools/ccsessions/pkg/models"
)

// Fixture variants.
const (
	VariantDefault = "default"
	VariantLarge   = "large"
	VariantLabels  = "labels"
)

// Variants lists the known fixture variants.
func Variants() []string {
	return []string{VariantDefault, VariantLarge, VariantLabels}
}

type seed struct {
	id     string
	repo   string
	branch string
	title  string
	slug   string
	intent string
	files  []string
	age    time.Duration
	span   time.Duration
	msgs   int
	labels []string
}

var defaultSeeds = []seed{
	{id: "3f2a9c1e-7b44-4a51-9d0e-1c2b3a4d5e6f", repo: "shop-api", branch: "fix/login", title: "Fix login bug",
		intent: "Login form rejects valid passwords after the bcrypt upgrade", files: []string{"auth.go", "auth_test.go"},
		age: 12 * time.Minute, span: 40 * time.Minute, msgs: 18, labels: []string{"bug", "auth"}},
	{id: "8c1d2e3f-0a9b-4c8d-8e7f-6a5b4c3d2e1f", repo: "shop-api", branch: "main", slug: "quiet-heron",
		intent: "Add rate limiting to the checkout endpoint", files: []string{"ratelimit.go", "router.go"},
		age: 2 * time.Hour, span: 90 * time.Minute, msgs: 42, labels: []string{"perf"}},
	{id: "a7b6c5d4-e3f2-4109-8a7b-6c5d4e3f2a10", repo: "web", branch: "feat/dark-mode",
		intent: "Implement dark mode toggle with persisted preference", files: []string{"theme.ts", "Settings.tsx", "App.tsx"},
		age: 7 * time.Hour, span: 3 * time.Hour, msgs: 63, labels: []string{"ui"}},
	{id: "b1c2d3e4-f5a6-4b7c-8d9e-0f1a2b3c4d5e", repo: "infra", title: "Terraform state migration",
		intent: "Move state buckets to the new account", files: []string{"main.tf", "backend.tf"},
		age: 20 * time.Hour, span: 2 * time.Hour, msgs: 27},
	{id: "c9d8e7f6-a5b4-4c3d-9e2f-1a0b9c8d7e6f", repo: "web", branch: "main", slug: "amber-fox",
		intent: "Why does the storybook build fail on CI?",
		age:    30 * time.Hour, span: 25 * time.Minute, msgs: 6, labels: []string{"ci"}},
	{id: "d4e5f6a7-b8c9-4d0e-8f1a-2b3c4d5e6f7a", repo: "~", intent: "Write a shell script that prunes old docker images",
		files: []string{"prune.sh"}, age: 40 * time.Hour, span: 15 * time.Minute, msgs: 4},
	{id: "e1f2a3b4-c5d6-4e7f-8091-a2b3c4d5e6f7", repo: "shop-api", branch: "feat/invoices", title: "Invoice PDF export",
		intent: "Generate invoice PDFs and email them to customers", files: []string{"invoice.go", "pdf.go", "mailer.go", "invoice_test.go"},
		age: 3 * 24 * time.Hour, span: 5 * time.Hour, msgs: 112, labels: []string{"feature"}},
	{id: "f0e1d2c3-b4a5-4968-8776-5a4b3c2d1e0f", repo: "docs", slug: "silver-owl",
		intent: "Rewrite the getting started guide", files: []string{"getting-started.md"},
		age: 10 * 24 * time.Hour, span: time.Hour, msgs: 15, labels: []string{"docs"}},
}

var largeRepos = []string{"shop-api", "web", "infra", "docs", "mobile", "data-pipeline"}
var largeIntents = []string{
	"Refactor the payment retry loop",
	"Add pagination to the orders endpoint",
	"Investigate flaky integration test",
	"Upgrade dependencies and fix breaking changes",
	"Write migration for the customer table",
	"Profile slow dashboard queries",
	"Add feature flag for the new onboarding",
	"Document the deployment runbook",
}
var largeLabels = []string{"bug", "feature", "perf", "docs", "ci"}

// Build returns the sessions and labels of a variant relative to now.
func Build(variant string, now time.Time) ([]*models.Session, labels.Labels, error) {
	var seeds []seed
	withLabels := false
	switch variant {
	case "", VariantDefault:
		seeds = defaultSeeds
	case VariantLabels:
		seeds = defaultSeeds
		withLabels = true
	case VariantLarge:
		seeds = largeSeeds()
		withLabels = true
	default:
		return nil, nil, fmt.Errorf("unknown demo variant %q (want one of %v)", variant, Variants())
	}

	sessions := make([]*models.Session, 0, len(seeds))
	tags := labels.Labels{}
	for _, sd := range seeds {
		sessions = append(sessions, sd.session(now))
		if withLabels && len(sd.labels) > 0 {
			tags[sd.id] = append([]string(nil), sd.labels...)
		}
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ID < sessions[j].ID })
	return sessions, tags, nil
}

func (sd seed) session(now time.Time) *models.Session {
	last := now.Add(-sd.age)
	s := &models.Session{
		ID:           sd.id,
		Path:         fmt.Sprintf("demo://%s.jsonl", sd.id),
		RepoName:     sd.repo,
		Branch:       models.StringPtr(sd.branch),
		StartedAt:    last.Add(-sd.span),
		LastActiveAt: last,
		MessageCount: sd.msgs,
		Title:        models.StringPtr(sd.title),
		Labels:       []string{},
		Slug:         sd.slug,
		FirstPrompt:  sd.intent,
		EditedFiles:  append([]string(nil), sd.files...),
		ModTime:      last,
	}
	return s
}

// largeSeeds generates a deterministic collection spanning several pages.
func largeSeeds() []seed {
	seeds := make([]seed, 0, 120)
	for i := 0; i < 120; i++ {
		sd := seed{
			id:     fmt.Sprintf("%08x-0000-4000-8000-%012x", 0x1000+i*7919, i),
			repo:   largeRepos[i%len(largeRepos)],
			intent: largeIntents[i%len(largeIntents)],
			files:  []string{fmt.Sprintf("file%02d.go", i%17)},
			age:    time.Duration(i*37) * time.Minute,
			span:   time.Duration(5+i%50) * time.Minute,
			msgs:   1 + (i*13)%97,
		}
		if i%3 == 0 {
			sd.branch = "main"
		}
		if i%4 == 0 {
			sd.labels = []string{largeLabels[i%len(largeLabels)]}
		}
		if i%10 == 0 {
			sd.title = fmt.Sprintf("Session %d", i)
		}
		seeds = append(seeds, sd)
	}
	return seeds
}
