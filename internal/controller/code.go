package controller

import (
	"context"
	"strings"

	"github.com/lumenlabs/lumen-cli/internal/api"
	"github.com/lumenlabs/lumen-cli/internal/models"
	"github.com/lumenlabs/lumen-cli/internal/utils"
)

// Code assistant modes.
const (
	CodeModeExplain  = "explain"
	CodeModeDebug    = "debug"
	CodeModeOptimize = "optimize"
	CodeModeConvert  = "convert"
)

// CodeGateway is the slice of the gateway client used by the code
// assistant.
type CodeGateway interface {
	CodeAssist(ctx context.Context, req api.CodeRequest) (*api.CodeResponse, error)
}

// Code drives the code-assistant capability.
type Code struct {
	base
	gw      CodeGateway
	history Recorder
	owner   string
}

// NewCode creates a code-assistant controller for the given principal.
func NewCode(gw CodeGateway, history Recorder, ownerUID string) *Code {
	return &Code{gw: gw, history: history, owner: ownerUID}
}

// Assist submits code in the given mode. Debug mode additionally requires
// a description of the error being chased; it is folded into the submitted
// code block.
func (c *Code) Assist(ctx context.Context, code, mode, language, errorDescription string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", utils.NewValidationError("code", "code is required")
	}
	if mode == CodeModeDebug && strings.TrimSpace(errorDescription) == "" {
		return "", utils.NewValidationError("error", "error description is required in debug mode")
	}

	body := code
	if mode == CodeModeDebug {
		body = code + "\n\nObserved error:\n" + errorDescription
	}

	var result string
	err := c.run(func() error {
		resp, err := c.gw.CodeAssist(ctx, api.CodeRequest{
			Code:     body,
			Mode:     mode,
			Language: language,
		})
		if err != nil {
			return err
		}
		result = resp.Result

		record(ctx, c.history, c.owner, models.CodeAssist{
			Mode:     mode,
			Language: language,
			Result:   result,
		})
		return nil
	})
	return result, err
}
