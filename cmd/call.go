package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/s0up4200/tikhub/api/catalog"
	"github.com/s0up4200/tikhub/client"
	"github.com/s0up4200/tikhub/models"
	"github.com/s0up4200/tikhub/query"
)

var (
	callBody        string
	callExpr        string
	callQuery       string
	callEach        string
	callConcurrency int
	callRaw         bool
)

// callCmd represents the call command
var callCmd = &cobra.Command{
	Use:   "call <name|path> [key=value...]",
	Short: "Call an endpoint and print the response",
	Long: `Call any endpoint by catalog name or by path. Arguments of the form
key=value become query parameters; --body sends a JSON body with POST.

Examples:
  tikhub call tiktok.app.fetch_one_video aweme_id=7350810998023949599
  tikhub call douyin.search.fetch_general_search --body '{"keyword":"cat"}'
  tikhub call tiktok.web.fetch_user_profile uniqueId=tiktok --expr 'data.userInfo.stats.followerCount'
  tikhub call tiktok.app.fetch_one_video --each aweme_id=1,2,3 --concurrency 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCall,
}

func init() {
	rootCmd.AddCommand(callCmd)

	callCmd.Flags().StringVar(&callBody, "body", "", "JSON request body, or @file to read it from a file")
	callCmd.Flags().StringVar(&callExpr, "expr", "", "expression evaluated against the response")
	callCmd.Flags().StringVar(&callQuery, "query", "", "name of a saved expression from the queries config section")
	callCmd.Flags().StringVar(&callEach, "each", "", "repeat the call for every value: key=v1,v2,...")
	callCmd.Flags().IntVar(&callConcurrency, "concurrency", client.DefaultConcurrency, "maximum calls in flight with --each")
	callCmd.Flags().BoolVar(&callRaw, "raw", false, "print the body as received")
	callCmd.MarkFlagsMutuallyExclusive("expr", "query")
	callCmd.MarkFlagsMutuallyExclusive("each", "body")
}

// callTarget is the resolved endpoint of a call.
type callTarget struct {
	method string
	path   string
}

func resolveTarget(nameOrPath string, hasBody bool) (callTarget, error) {
	if d, ok := catalog.Lookup(nameOrPath); ok {
		return callTarget{method: d.Method, path: d.Path}, nil
	}
	if !strings.HasPrefix(nameOrPath, "/") {
		return callTarget{}, fmt.Errorf("unknown endpoint %q (see 'tikhub endpoints')", nameOrPath)
	}

	method := http.MethodGet
	if hasBody {
		method = http.MethodPost
	}
	return callTarget{method: method, path: nameOrPath}, nil
}

// parseParams turns key=value arguments into query values.
func parseParams(args []string) (client.Values, error) {
	params := client.Values{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q: expected key=value", arg)
		}
		params[key] = value
	}
	return params, nil
}

// parseEach splits key=v1,v2 into the key and its values.
func parseEach(arg string) (string, []string, error) {
	key, list, ok := strings.Cut(arg, "=")
	if !ok || key == "" || list == "" {
		return "", nil, fmt.Errorf("invalid --each %q: expected key=v1,v2", arg)
	}

	var values []string
	for _, v := range strings.Split(list, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return "", nil, fmt.Errorf("invalid --each %q: no values", arg)
	}
	return key, values, nil
}

// checkEach rejects --each for JSON-body calls, which would repeat one body.
func checkEach(each, body string) error {
	if each != "" && body != "" {
		return errors.New("--each cannot be combined with --body: the values are sent as query parameters")
	}
	return nil
}

func readBody(arg string) (json.RawMessage, error) {
	if arg == "" {
		return nil, nil
	}

	data := []byte(arg)
	if name, ok := strings.CutPrefix(arg, "@"); ok {
		var err error
		if data, err = os.ReadFile(name); err != nil {
			return nil, fmt.Errorf("failed to read body: %w", err)
		}
	}
	if !json.Valid(data) {
		return nil, errors.New("body is not valid JSON")
	}
	return json.RawMessage(data), nil
}

// selectExpression returns the --expr text or the named saved query. Config
// keys are lowercased on load, so names match case-insensitively.
func selectExpression() (string, error) {
	if callQuery == "" {
		return callExpr, nil
	}
	expression, ok := cfg.Queries[strings.ToLower(callQuery)]
	if !ok {
		return "", fmt.Errorf("unknown query %q", callQuery)
	}
	return expression, nil
}

// caller performs one call with the given params.
type caller func(ctx context.Context, c *client.Client, params client.Values) (*client.Response[models.ResponseModel], error)

func newCaller(target callTarget, body json.RawMessage) caller {
	if target.method == http.MethodPost {
		if body == nil {
			ep := client.PostWithQuery[client.Values, models.ResponseModel](target.path)
			return ep.Detailed
		}
		ep := client.Post[json.RawMessage, models.ResponseModel](target.path)
		return func(ctx context.Context, c *client.Client, params client.Values) (*client.Response[models.ResponseModel], error) {
			// Query parameters are ignored for JSON-body endpoints
			if len(params) > 0 {
				logger.Warn().Int("params", len(params)).Msg("Ignoring key=value parameters for a JSON-body endpoint")
			}
			return ep.Detailed(ctx, c, body)
		}
	}

	ep := client.Get[client.Values, models.ResponseModel](target.path)
	return ep.Detailed
}

func runCall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := checkEach(callEach, callBody); err != nil {
		return err
	}

	body, err := readBody(callBody)
	if err != nil {
		return err
	}

	target, err := resolveTarget(args[0], body != nil)
	if err != nil {
		return err
	}

	params, err := parseParams(args[1:])
	if err != nil {
		return err
	}

	expression, err := selectExpression()
	if err != nil {
		return err
	}

	var program *query.Program
	if expression != "" {
		if program, err = query.NewCompiler().Compile(expression); err != nil {
			return err
		}
	}

	c, err := newAPIClient()
	if err != nil {
		return err
	}
	call := newCaller(target, body)

	logger.Debug().
		Str("method", target.method).
		Str("path", target.path).
		Msg("Calling endpoint")

	if callEach == "" {
		resp, err := call(ctx, c, params)
		if err != nil {
			return err
		}
		return printResponse(resp, program)
	}

	key, values, err := parseEach(callEach)
	if err != nil {
		return err
	}

	responses, err := client.Map(ctx, callConcurrency, values, func(ctx context.Context, value string) (*client.Response[models.ResponseModel], error) {
		p := make(client.Values, len(params)+1)
		for k, v := range params {
			p[k] = v
		}
		p[key] = value
		return call(ctx, c.WithLogger(logger.With().Str(key, value).Logger()), p)
	})
	if err != nil {
		return err
	}

	var failed int
	for i, resp := range responses {
		fmt.Printf("# %s=%s\n", key, values[i])
		if err := printResponse(resp, program); err != nil {
			logger.Error().Err(err).Str(key, values[i]).Msg("Call failed")
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d calls failed", failed, len(values))
	}
	return nil
}

// printResponse writes the body, or the expression result, to stdout. A 422
// is printed and returned as an error.
func printResponse(resp *client.Response[models.ResponseModel], program *query.Program) error {
	if resp.Parsed == nil {
		return &client.UnexpectedStatusError{StatusCode: resp.StatusCode, Content: resp.Content}
	}
	if resp.Parsed.Invalid != nil {
		printJSON(resp.Content)
		return resp.Parsed.Invalid
	}

	if program == nil {
		if callRaw {
			fmt.Println(string(resp.Content))
			return nil
		}
		printJSON(resp.Content)
		return nil
	}

	doc, err := query.Decode(resp.Content)
	if err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	out, err := program.Eval(doc)
	if err != nil {
		return err
	}

	switch v := out.(type) {
	case string:
		fmt.Println(v)
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Println(string(data))
	}
	return nil
}

func printJSON(content []byte) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, content, "", "  "); err != nil {
		fmt.Println(string(content))
		return
	}
	fmt.Println(buf.String())
}
