package mcpadapter

import (
	"context"

	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/executor"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ValidateInput is the MCP tool input schema (matches HTTP API field names).
type ValidateInput struct {
	RequestID string `json:"request_id,omitempty" jsonschema:"unique request identifier"`
	Question  string `json:"question" jsonschema:"user's clinical question"`
	Answer    string `json:"answer" jsonschema:"assistant answer to classify"`
	Provider  string `json:"provider,omitempty" jsonschema:"model provider: bedrock, ollama, or biobyia"`
	QueryType string `json:"query_type,omitempty" jsonschema:"query type: general, protocol_query, treatment_suggestion, or drug_interaction"`
}

// RunSingleCheckInput is the MCP tool input schema for single check execution.
type RunSingleCheckInput struct {
	RequestID string `json:"request_id,omitempty" jsonschema:"unique request identifier"`
	Question  string `json:"question" jsonschema:"user's clinical question"`
	Answer    string `json:"answer" jsonschema:"assistant answer to classify"`
	QueryType string `json:"query_type,omitempty" jsonschema:"query type: general, protocol_query, treatment_suggestion, or drug_interaction"`
	CheckName string `json:"check_name" jsonschema:"check name: direct_prescription, disclaimer, citation, high_risk, or contraindication"`
}

// NewValidateHandler returns a tool handler that uses the given executor.
// Pass the returned function to mcp.AddTool.
func NewValidateHandler(exec *executor.Executor) func(context.Context, *mcp.CallToolRequest, ValidateInput) (*mcp.CallToolResult, models.PipelineResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ValidateInput) (*mcp.CallToolResult, models.PipelineResult, error) {
		return ValidateResponse(ctx, exec, req, input)
	}
}

// ValidateResponse runs the classification pipeline and returns the result.
func ValidateResponse(
	ctx context.Context,
	exec *executor.Executor,
	req *mcp.CallToolRequest,
	input ValidateInput,
) (*mcp.CallToolResult, models.PipelineResult, error) {
	result := exec.Validate(ctx, models.ValidationRequest{
		RequestID: input.RequestID,
		Question:  input.Question,
		Answer:    input.Answer,
		Provider:  input.Provider,
		QueryType: models.QueryType(input.QueryType),
	})
	return nil, result, nil
}

// NewRunSingleCheckHandler returns a tool handler for single check execution.
// Pass the returned function to mcp.AddTool.
func NewRunSingleCheckHandler(checkExec *executor.CheckExecutor) func(context.Context, *mcp.CallToolRequest, RunSingleCheckInput) (*mcp.CallToolResult, models.ContentValidationResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RunSingleCheckInput) (*mcp.CallToolResult, models.ContentValidationResult, error) {
		return RunSingleCheck(ctx, checkExec, req, input)
	}
}

// RunSingleCheck runs one named guardrail check and returns the result.
func RunSingleCheck(
	ctx context.Context,
	checkExec *executor.CheckExecutor,
	req *mcp.CallToolRequest,
	input RunSingleCheckInput,
) (*mcp.CallToolResult, models.ContentValidationResult, error) {
	result, err := checkExec.Execute(input.CheckName, models.ValidationRequest{
		RequestID: input.RequestID,
		Question:  input.Question,
		Answer:    input.Answer,
		QueryType: models.QueryType(input.QueryType),
	})
	return nil, result, err
}
