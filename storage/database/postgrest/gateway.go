// Package postgrest is the core.Gateway over a hosted PostgREST (Supabase) endpoint.
package postgrest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/educamais/educamais/core"
)

const restPath = "/rest/v1/"

type Gateway struct {
	baseURL string
	apiKey  string
	client  *rest.Client
}

var _ core.Gateway = (*Gateway)(nil) // interface compliance check

func NewGateway(conf core.PostgRESTConfig) *Gateway {
	return &Gateway{
		baseURL: strings.TrimSuffix(conf.URL, "/"),
		apiKey:  conf.APIKey,
		client:  &rest.Client{HTTPClient: &http.Client{Timeout: conf.Timeout}},
	}
}

// errorBody is the PostgREST error document.
type errorBody struct {
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
	Code    string `json:"code"`
}

func (gw *Gateway) request(method rest.Method, resource string, params url.Values, body interface{}, prefer ...string) (rest.Request, error) {
	u := gw.baseURL + restPath + url.PathEscape(resource)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req := rest.Request{
		Method:  method,
		BaseURL: u,
		Headers: map[string]string{
			"apikey":        gw.apiKey,
			"Authorization": "Bearer " + gw.apiKey,
			"Accept":        "application/json",
		},
	}
	if len(prefer) > 0 {
		req.Headers["Prefer"] = strings.Join(prefer, ",")
	}
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return rest.Request{}, err
		}
		req.Body = data
		req.Headers["Content-Type"] = "application/json"
	}
	return req, nil
}

func (gw *Gateway) send(ctx context.Context, op, resource string, req rest.Request) (*rest.Response, error) {
	res, err := gw.client.SendWithContext(ctx, req)
	if err != nil {
		return nil, core.NewRemoteError(op, resource, err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, responseError(op, resource, res)
	}
	return res, nil
}

func responseError(op, resource string, res *rest.Response) error {
	var body errorBody
	msg := http.StatusText(res.StatusCode)
	if err := json.Unmarshal([]byte(res.Body), &body); err == nil && body.Message != "" {
		msg = body.Message
	}
	return &core.RemoteError{
		Op:       op,
		Resource: resource,
		Message:  msg,
		Err:      errors.Errorf("status %d: %s", res.StatusCode, res.Body),
	}
}

func (gw *Gateway) Select(ctx context.Context, q core.Query, dest interface{}) error {
	params, err := filterParams(q.Filters)
	if err != nil {
		return core.NewRemoteError("select", q.Resource, err)
	}
	if len(q.Columns) > 0 {
		params.Set("select", strings.Join(q.Columns, ","))
	}
	if len(q.Ordering) > 0 {
		orders := make([]string, 0, len(q.Ordering))
		for _, ord := range q.Ordering {
			dir := "desc"
			if ord.Ascending {
				dir = "asc"
			}
			orders = append(orders, ord.Field+"."+dir)
		}
		params.Set("order", strings.Join(orders, ","))
	}

	req, err := gw.request(rest.Get, q.Resource, params, nil)
	if err != nil {
		return core.NewRemoteError("select", q.Resource, err)
	}
	res, err := gw.send(ctx, "select", q.Resource, req)
	if err != nil {
		return err
	}
	return core.NewRemoteError("select", q.Resource, json.Unmarshal([]byte(res.Body), dest))
}

// representation returns the rows PostgREST sent back for a mutation.
func representation(res *rest.Response) ([]json.RawMessage, error) {
	var rows []json.RawMessage
	if strings.TrimSpace(res.Body) == "" {
		return rows, nil
	}
	err := json.Unmarshal([]byte(res.Body), &rows)
	return rows, err
}

func (gw *Gateway) Insert(ctx context.Context, resource string, row core.Row, dest interface{}) error {
	req, err := gw.request(rest.Post, resource, nil, row, "return=representation")
	if err != nil {
		return core.NewRemoteError("insert", resource, err)
	}
	res, err := gw.send(ctx, "insert", resource, req)
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	rows, err := representation(res)
	if err != nil {
		return core.NewRemoteError("insert", resource, err)
	}
	if len(rows) == 0 {
		return core.NewRemoteError("insert", resource, errors.New("no row returned"))
	}
	return core.NewRemoteError("insert", resource, json.Unmarshal(rows[0], dest))
}

func (gw *Gateway) mutateByID(ctx context.Context, op string, method rest.Method, resource string, id int, body interface{}) error {
	params := url.Values{"id": {"eq." + strconv.Itoa(id)}}
	req, err := gw.request(method, resource, params, body, "return=representation")
	if err != nil {
		return core.NewRemoteError(op, resource, err)
	}
	res, err := gw.send(ctx, op, resource, req)
	if err != nil {
		return err
	}
	rows, err := representation(res)
	if err != nil {
		return core.NewRemoteError(op, resource, err)
	}
	if len(rows) == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (gw *Gateway) Update(ctx context.Context, resource string, id int, fields core.Row) error {
	return gw.mutateByID(ctx, "update", rest.Patch, resource, id, fields)
}

func (gw *Gateway) Delete(ctx context.Context, resource string, id int) error {
	return gw.mutateByID(ctx, "delete", rest.Delete, resource, id, nil)
}

func (gw *Gateway) Count(ctx context.Context, resource string, filters ...core.Filter) (int, error) {
	params, err := filterParams(filters)
	if err != nil {
		return 0, core.NewRemoteError("count", resource, err)
	}
	req, err := gw.request(rest.Method(http.MethodHead), resource, params, nil, "count=exact")
	if err != nil {
		return 0, core.NewRemoteError("count", resource, err)
	}
	res, err := gw.send(ctx, "count", resource, req)
	if err != nil {
		return 0, err
	}
	n, err := parseContentRange(http.Header(res.Headers).Get("Content-Range"))
	if err != nil {
		return 0, core.NewRemoteError("count", resource, err)
	}
	return n, nil
}

// parseContentRange reads the total of "0-24/573" or "*/0".
func parseContentRange(header string) (int, error) {
	i := strings.LastIndex(header, "/")
	if i < 0 {
		return 0, errors.Errorf("invalid Content-Range %q", header)
	}
	n, err := strconv.Atoi(header[i+1:])
	if err != nil {
		return 0, errors.Errorf("invalid Content-Range %q", header)
	}
	return n, nil
}

func filterParams(filters []core.Filter) (url.Values, error) {
	params := make(url.Values)
	for _, f := range filters {
		switch f.Op {
		case core.OpEq:
			params.Add(f.Field, "eq."+fmt.Sprint(f.Value))
		case core.OpIn:
			vals := f.Values()
			items := make([]string, 0, len(vals))
			for _, v := range vals {
				items = append(items, listItem(v))
			}
			params.Add(f.Field, "in.("+strings.Join(items, ",")+")")
		default:
			return nil, fmt.Errorf("unsupported filter operator %q", f.Op)
		}
	}
	return params, nil
}

// listItem quotes values holding PostgREST list delimiters.
func listItem(v interface{}) string {
	s := fmt.Sprint(v)
	if strings.ContainsAny(s, `,.:()" `) {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return s
}
