package core

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"github.com/huangsam/weektrack/internal/contract"
	"github.com/huangsam/weektrack/schema"
)

// ErrAmbiguous is returned by the strict reducer when several files match one role.
var ErrAmbiguous = errors.New("ambiguous classification")

// AmbiguityError lists the competing candidates for a role.
type AmbiguityError struct {
	Role       schema.Role
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("%s: %d %s candidates: %s", ErrAmbiguous, len(e.Candidates), e.Role, strings.Join(e.Candidates, ", "))
}

// Unwrap lets errors.Is match ErrAmbiguous.
func (e *AmbiguityError) Unwrap() error {
	return ErrAmbiguous
}

// Reducer folds a stream of classified entries into a Classification.
type Reducer func(seq iter.Seq2[schema.ClassifiedEntry, error]) (schema.Classification, error)

// ClassifyName decides the roles of a single file. Both rules look at the
// lower-cased file name and are evaluated independently.
func ClassifyName(path string, rules contract.ClassifyRules) schema.ClassifiedEntry {
	name := strings.ToLower(filepath.Base(path))
	return schema.ClassifiedEntry{
		Path:     path,
		Task:     containsAny(name, rules.TaskIdentifiers),
		Solution: containsAny(name, rules.SolutionIdentifiers),
	}
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if tok != "" && strings.Contains(s, tok) {
			return true
		}
	}
	return false
}

// WalkArtifacts walks root depth-first in lexical order and yields every
// non-directory entry with its roles. Hidden entries are skipped, and hidden
// directories are not descended; the root itself is always walked, also when
// it is a symlink. Yielded paths stay below root as given.
func WalkArtifacts(root string, rules contract.ClassifyRules) iter.Seq2[schema.ClassifiedEntry, error] {
	return func(yield func(schema.ClassifiedEntry, error) bool) {
		walkRoot := root
		if resolved, err := filepath.EvalSymlinks(root); err == nil {
			walkRoot = resolved
		}
		_ = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
			path = underRoot(root, walkRoot, path)
			if err != nil {
				if !yield(schema.ClassifiedEntry{Path: path}, err) {
					return filepath.SkipAll
				}
				return nil
			}
			if path != root && contract.IsHidden(d.Name()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if !yield(ClassifyName(path, rules), nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// underRoot maps a path found below walkRoot back below root.
func underRoot(root, walkRoot, path string) string {
	if walkRoot == root {
		return path
	}
	if path == walkRoot {
		return root
	}
	rel, err := filepath.Rel(walkRoot, path)
	if err != nil {
		return path
	}
	return filepath.Join(root, rel)
}

// collect runs the fold shared by both reducers: every match is recorded as a
// candidate and the stored path is overwritten, so the last match wins.
func collect(seq iter.Seq2[schema.ClassifiedEntry, error]) (schema.Classification, error) {
	var c schema.Classification
	for entry, err := range seq {
		if err != nil {
			return schema.Classification{}, fmt.Errorf("cannot walk %s: %w", entry.Path, err)
		}
		if entry.Task {
			c.TaskPath = entry.Path
			c.TaskCandidates = append(c.TaskCandidates, entry.Path)
		}
		if entry.Solution {
			c.SolutionPath = entry.Path
			c.SolutionCandidates = append(c.SolutionCandidates, entry.Path)
		}
	}
	return c, nil
}

// LastWins keeps the last matching file per role in traversal order.
func LastWins(seq iter.Seq2[schema.ClassifiedEntry, error]) (schema.Classification, error) {
	return collect(seq)
}

// Strict fails with an AmbiguityError when a role has more than one candidate.
func Strict(seq iter.Seq2[schema.ClassifiedEntry, error]) (schema.Classification, error) {
	c, err := collect(seq)
	if err != nil {
		return c, err
	}
	if len(c.TaskCandidates) > 1 {
		return c, &AmbiguityError{Role: schema.TaskRole, Candidates: c.TaskCandidates}
	}
	if len(c.SolutionCandidates) > 1 {
		return c, &AmbiguityError{Role: schema.SolutionRole, Candidates: c.SolutionCandidates}
	}
	return c, nil
}

// ReducerFor maps an ambiguity policy to its reducer.
func ReducerFor(policy schema.AmbiguityPolicy) Reducer {
	if policy == schema.StrictPolicy {
		return Strict
	}
	return LastWins
}

// Classify resolves the task and solution artifacts of a week folder.
func Classify(weekDir string, rules contract.ClassifyRules, policy schema.AmbiguityPolicy) (schema.Classification, error) {
	return ReducerFor(policy)(WalkArtifacts(weekDir, rules))
}
