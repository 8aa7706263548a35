package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/minededuce/minededuce/internal/compiler"
	"github.com/minededuce/minededuce/internal/ir"
)

// LoadMode controls how errors are handled during constraint loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult contains the results of loading a constraint document.
type LoadResult struct {
	Set       *ir.ConstraintSet
	CUEValue  cue.Value // The raw CUE value for additional processing
	FileCount int       // Number of CUE files found
}

// LoadError represents an error that occurred during constraint loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadConstraints loads and compiles a CUE constraint document from a file
// or a directory of .cue files. If mode is LoadModeFailFast, returns on the
// first compile error; LoadModeCollectAll gathers all of them.
func LoadConstraints(path string, mode LoadMode) (*LoadResult, []error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("path not found: %s", path)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing path: %v", err)}}
	}

	var (
		cueFiles []string
		cfg      *load.Config
		args     []string
	)
	if info.IsDir() {
		cueFiles, err = FindCUEFiles(path)
		if err != nil {
			return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
		}
		if len(cueFiles) == 0 {
			return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", path)}}
		}
		cfg = &load.Config{Dir: path}
		args = []string{"."}
	} else {
		if filepath.Ext(path) != ".cue" {
			return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("not a CUE file: %s", path)}}
		}
		cueFiles = []string{path}
		cfg = &load.Config{Dir: filepath.Dir(path)}
		args = []string{filepath.Base(path)}
	}

	ctx := cuecontext.New()
	instances := load.Instances(args, cfg)
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	result := &LoadResult{
		CUEValue:  value,
		FileCount: len(cueFiles),
	}

	constraintsVal := value.LookupPath(cue.ParsePath("constraints"))
	if !constraintsVal.Exists() {
		return result, []error{&LoadError{Code: ErrCodeGeneric, Message: "no constraints block found in document"}}
	}

	set, compileErr := compiler.CompileConstraintSet(constraintsVal)
	if compileErr != nil {
		return result, []error{convertCompileError(compileErr)}
	}
	result.Set = set

	var errs []error
	for _, vErr := range compiler.Validate(set) {
		errs = append(errs, &LoadError{Code: ErrCodeInvalidSet, Message: vErr.Error()})
		if mode == LoadModeFailFast {
			return result, errs
		}
	}
	return result, errs
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error) *LoadError {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    ErrCodeBuildFailed,
			Message: compileErr.Message,
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodeGeneric,
		Message: err.Error(),
	}
}
