package clientconfig

import (
	"fmt"
	"slices"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/tansive/mcpconf/internal/definition"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ServersKey is the top-level object holding server entries.
const ServersKey = "mcpServers"

const emptyDocument = `{"mcpServers": {}}`

// Document is a client config file held as raw JSON. Edits go through sjson so keys
// other than the touched server entry keep their content and order.
type Document struct {
	raw []byte
}

// NewDocument returns a document with an empty mcpServers object.
func NewDocument() *Document {
	return &Document{raw: []byte(emptyDocument)}
}

// ParseDocument validates raw and wraps it. The document must be a JSON object and
// mcpServers, when present, must be an object.
func ParseDocument(raw []byte) (*Document, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return NewDocument(), nil
	}
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidDocument.Msg("client config is not valid JSON")
	}
	if !gjson.ParseBytes(raw).IsObject() {
		return nil, ErrInvalidDocument.Msg("client config must be a JSON object")
	}
	servers := gjson.GetBytes(raw, ServersKey)
	if servers.Exists() && !servers.IsObject() && servers.Type != gjson.Null {
		return nil, ErrInvalidDocument.Msg(ServersKey + " must be an object")
	}
	return &Document{raw: slices.Clone(raw)}, nil
}

// Names returns the configured server names, sorted.
func (d *Document) Names() []string {
	var names []string
	gjson.GetBytes(d.raw, ServersKey).ForEach(func(key, _ gjson.Result) bool {
		names = append(names, key.String())
		return true
	})
	slices.Sort(names)
	return names
}

// Has reports whether a server entry exists.
func (d *Document) Has(name string) bool {
	p, err := serverPath(name)
	if err != nil {
		return false
	}
	return gjson.GetBytes(d.raw, p).Exists()
}

// Get decodes the named server entry.
func (d *Document) Get(name string) (*definition.ServerInstance, error) {
	p, err := serverPath(name)
	if err != nil {
		return nil, err
	}
	res := gjson.GetBytes(d.raw, p)
	if !res.Exists() {
		return nil, ErrServerNotPresent.Msg(fmt.Sprintf("server %s is not configured", name))
	}
	return decodeInstance(name, res)
}

// Servers decodes every server entry.
func (d *Document) Servers() (map[string]*definition.ServerInstance, error) {
	servers := map[string]*definition.ServerInstance{}
	var decodeErr error
	gjson.GetBytes(d.raw, ServersKey).ForEach(func(key, value gjson.Result) bool {
		inst, err := decodeInstance(key.String(), value)
		if err != nil {
			decodeErr = err
			return false
		}
		servers[key.String()] = inst
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return servers, nil
}

// Raw returns the stored JSON of a server entry, or nil.
func (d *Document) Raw(name string) []byte {
	p, err := serverPath(name)
	if err != nil {
		return nil
	}
	res := gjson.GetBytes(d.raw, p)
	if !res.Exists() {
		return nil
	}
	return []byte(res.Raw)
}

// Put stores inst under name. An existing entry keeps the keys the instance does not
// manage, such as disabled or autoApprove.
func (d *Document) Put(name string, inst *definition.ServerInstance) error {
	p, err := serverPath(name)
	if err != nil {
		return err
	}
	if inst == nil {
		return ErrInvalidDocument.Msg("nil server instance")
	}
	inst = inst.Clone()
	if inst.Args == nil {
		inst.Args = []string{}
	}
	if gjson.GetBytes(d.raw, ServersKey).Type == gjson.Null {
		if d.raw, err = sjson.SetRawBytes(d.raw, ServersKey, []byte("{}")); err != nil {
			return ErrInvalidDocument.Err(err)
		}
	}

	raw, err := d.put(p, inst)
	if err != nil {
		return ErrInvalidDocument.MsgErr("unable to store server "+name, err)
	}
	d.raw = raw
	return nil
}

func (d *Document) put(p string, inst *definition.ServerInstance) ([]byte, error) {
	if !gjson.GetBytes(d.raw, p).IsObject() {
		data, err := json.Marshal(inst)
		if err != nil {
			return nil, err
		}
		return sjson.SetRawBytes(d.raw, p, data)
	}

	raw, err := sjson.SetBytes(d.raw, p+".command", inst.Command)
	if err != nil {
		return nil, err
	}
	args, err := json.Marshal(inst.Args)
	if err != nil {
		return nil, err
	}
	if raw, err = sjson.SetRawBytes(raw, p+".args", args); err != nil {
		return nil, err
	}
	if len(inst.Env) == 0 {
		return sjson.DeleteBytes(raw, p+".env")
	}
	env, err := json.Marshal(inst.Env)
	if err != nil {
		return nil, err
	}
	return sjson.SetRawBytes(raw, p+".env", env)
}

// Remove deletes the named entry and reports whether it existed.
func (d *Document) Remove(name string) bool {
	if !d.Has(name) {
		return false
	}
	p, _ := serverPath(name)
	raw, err := sjson.DeleteBytes(d.raw, p)
	if err != nil {
		return false
	}
	d.raw = raw
	return true
}

// Bytes returns the document pretty-printed with a trailing newline. Key order is
// preserved.
func (d *Document) Bytes() []byte {
	out := []byte(gjson.GetBytes(d.raw, "@pretty").Raw)
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	return out
}

func decodeInstance(name string, value gjson.Result) (*definition.ServerInstance, error) {
	if !value.IsObject() {
		return nil, ErrInvalidDocument.Msg(fmt.Sprintf("server %s must be an object", name))
	}
	var inst definition.ServerInstance
	if err := json.Unmarshal([]byte(value.Raw), &inst); err != nil {
		return nil, ErrInvalidDocument.MsgErr(fmt.Sprintf("unable to decode server %s", name), err)
	}
	return &inst, nil
}

// serverPath builds the gjson/sjson path of a server entry. Path syntax characters
// that cannot be escaped are rejected.
func serverPath(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrInvalidName.Msg("server name cannot be empty")
	}
	if strings.ContainsAny(name, `|#@\`) || strings.HasPrefix(name, ":") {
		return "", ErrInvalidName.Msg(fmt.Sprintf("server name %q contains unsupported characters", name))
	}
	var b strings.Builder
	b.WriteString(ServersKey)
	b.WriteByte('.')
	for _, r := range name {
		switch r {
		case '.', '*', '?':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}
