package oksdk

import (
	"context"
	"fmt"
	"net/url"
	"slices"
)

// MethodSpec describes one remote method of a namespace.
type MethodSpec struct {
	// SessionOnly methods refuse to run in application scope.
	SessionOnly bool
}

// namespaces is the static table of known API namespaces and their methods.
// Methods missing from a table can still be called through Namespace.Call;
// they just get no scope check.
var namespaces = map[string]map[string]MethodSpec{
	"auth": {
		"getSessionScope": {SessionOnly: true},
		"touchSession":    {SessionOnly: true},
		"expireSession":   {SessionOnly: true},
	},
	"friends": {
		"get":              {SessionOnly: true},
		"getAppUsers":      {SessionOnly: true},
		"getOnline":        {SessionOnly: true},
		"getMutualFriends": {SessionOnly: true},
		"areFriends":       {},
	},
	"group": {
		"getInfo":            {},
		"getMembers":         {},
		"getUserGroupsV2":    {SessionOnly: true},
		"getUserGroupsByIds": {},
	},
	"notifications": {
		"sendSimple": {},
	},
	"photos": {
		"getPhotos":    {},
		"getPhotoInfo": {},
		"getUploadUrl": {SessionOnly: true},
		"commit":       {SessionOnly: true},
	},
	"stream": {
		"get":     {SessionOnly: true},
		"publish": {},
	},
	"url": {
		"getInfo": {},
	},
	"users": {
		"getCurrentUser":   {SessionOnly: true},
		"getLoggedInUser":  {SessionOnly: true},
		"getInfo":          {},
		"hasAppPermission": {SessionOnly: true},
		"isAppUser":        {SessionOnly: true},
		"setStatus":        {SessionOnly: true},
	},
	"widget": {
		"getWidgets":       {},
		"getWidgetContent": {},
	},
}

// Namespaces returns the sorted names of the known namespaces.
func Namespaces() []string {
	names := make([]string, 0, len(namespaces))
	for name := range namespaces {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Namespace is a view of a Session restricted to one API namespace.
type Namespace struct {
	session *Session
	name    string
	methods map[string]MethodSpec
}

// Namespace returns the view for name, or ErrInvalidArgument when the
// namespace is not known.
func (s *Session) Namespace(name string) (*Namespace, error) {
	methods, ok := namespaces[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown namespace %q", ErrInvalidArgument, name)
	}
	return &Namespace{session: s, name: name, methods: methods}, nil
}

func (s *Session) mustNamespace(name string) *Namespace {
	ns, err := s.Namespace(name)
	if err != nil {
		panic(err)
	}
	return ns
}

func (s *Session) Auth() *Namespace          { return s.mustNamespace("auth") }
func (s *Session) Friends() *Namespace       { return s.mustNamespace("friends") }
func (s *Session) Group() *Namespace         { return s.mustNamespace("group") }
func (s *Session) Notifications() *Namespace { return s.mustNamespace("notifications") }
func (s *Session) Photos() *Namespace        { return s.mustNamespace("photos") }
func (s *Session) Stream() *Namespace        { return s.mustNamespace("stream") }
func (s *Session) URL() *Namespace           { return s.mustNamespace("url") }
func (s *Session) Users() *Namespace         { return s.mustNamespace("users") }
func (s *Session) Widget() *Namespace        { return s.mustNamespace("widget") }

// Name returns the namespace name, e.g. "stream".
func (n *Namespace) Name() string { return n.name }

// Methods returns the sorted names of the declared methods.
func (n *Namespace) Methods() []string {
	names := make([]string, 0, len(n.methods))
	for name := range n.methods {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Spec returns the declaration of method and whether it is declared.
func (n *Namespace) Spec(method string) (MethodSpec, bool) {
	spec, ok := n.methods[method]
	return spec, ok
}

// Call invokes namespace.method through Session.APICall, forcing session
// scope for methods declared SessionOnly.
func (n *Namespace) Call(ctx context.Context, method string, params url.Values) (*Response, error) {
	spec := n.methods[method]
	return n.session.APICall(ctx, n.name+"."+method, params, spec.SessionOnly)
}
