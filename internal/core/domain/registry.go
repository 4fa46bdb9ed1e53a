package domain

// DisabledPolicy decides how projects with Enabled == false are treated.
type DisabledPolicy string

const (
	// DisabledExpose treats disabled projects like any other project.
	DisabledExpose DisabledPolicy = "expose"
	// DisabledReject lists disabled projects but refuses to execute them.
	DisabledReject DisabledPolicy = "reject"
	// DisabledHide treats disabled projects as unknown.
	DisabledHide DisabledPolicy = "hide"
)

// Valid reports whether p is one of the known policies.
func (p DisabledPolicy) Valid() bool {
	switch p {
	case DisabledExpose, DisabledReject, DisabledHide:
		return true
	default:
		return false
	}
}

// Registry is the in-memory, read-only collection of loaded projects.
// It has no mutation path, so concurrent readers need no locking.
type Registry struct {
	projects []Project
	index    map[string]int
	policy   DisabledPolicy
}

// NewRegistry builds a registry from projects in load order.
// When codenames repeat, the first project wins.
func NewRegistry(projects []Project, policy DisabledPolicy) *Registry {
	if !policy.Valid() {
		policy = DisabledExpose
	}

	r := &Registry{
		projects: make([]Project, 0, len(projects)),
		index:    make(map[string]int, len(projects)),
		policy:   policy,
	}

	for _, p := range projects {
		if _, exists := r.index[p.Codename]; exists {
			continue
		}
		r.index[p.Codename] = len(r.projects)
		r.projects = append(r.projects, p.Clone())
	}

	return r
}

// Policy returns the disabled-project policy of the registry.
func (r *Registry) Policy() DisabledPolicy {
	return r.policy
}

// Get returns the project with the exact codename.
// Under DisabledHide, disabled projects are not found.
func (r *Registry) Get(codename string) (Project, bool) {
	i, ok := r.index[codename]
	if !ok {
		return Project{}, false
	}
	p := r.projects[i]
	if r.hidden(p) {
		return Project{}, false
	}
	return p.Clone(), true
}

// All returns the visible projects in load order.
func (r *Registry) All() []Project {
	out := make([]Project, 0, len(r.projects))
	for _, p := range r.projects {
		if r.hidden(p) {
			continue
		}
		out = append(out, p.Clone())
	}
	return out
}

// Len returns the number of visible projects.
func (r *Registry) Len() int {
	n := 0
	for _, p := range r.projects {
		if !r.hidden(p) {
			n++
		}
	}
	return n
}

// Executable reports whether the policy allows p to run.
func (r *Registry) Executable(p Project) bool {
	return p.Enabled || r.policy == DisabledExpose
}

func (r *Registry) hidden(p Project) bool {
	return !p.Enabled && r.policy == DisabledHide
}
