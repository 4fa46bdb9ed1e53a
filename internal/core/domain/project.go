package domain

// DefaultDescription is used when a project file omits its description.
const DefaultDescription = "No description provided"

// Project is a named, independently authorized unit of work.
// Projects are built once at startup and are read-only afterwards.
type Project struct {
	// Codename is the unique lookup key used by the API.
	Codename    string
	Name        string
	Description string
	// Enabled is loaded from configuration; its effect is governed by DisabledPolicy.
	Enabled bool
	// Tasks run in this order.
	Tasks []Task
	Auth  Authorization
	// Source is the file the project was loaded from, if any.
	Source string
}

// Task is one unit of work within a project.
type Task struct {
	// Name labels the task in logs. It is not required to be unique.
	Name      string
	Operation Operation
}

// OperationKind is the tag of an Operation variant.
type OperationKind string

const (
	// OperationCommand invokes an external program.
	OperationCommand OperationKind = "command"
)

// Operation is the tagged union of things a task can do.
// The set of variants is closed to this package.
type Operation interface {
	Kind() OperationKind
	operation()
}

// CommandOperation invokes Program with Args and waits for it to exit.
type CommandOperation struct {
	Program string
	Args    []string
	// Dir is the working directory. Empty means the server's working directory.
	Dir string
	// Env holds variables added on top of the inherited environment.
	Env map[string]string
}

// Kind returns OperationCommand.
func (CommandOperation) Kind() OperationKind { return OperationCommand }

func (CommandOperation) operation() {}

// Clone returns a deep copy of the project.
func (p Project) Clone() Project {
	out := p
	out.Tasks = make([]Task, len(p.Tasks))
	for i, t := range p.Tasks {
		out.Tasks[i] = Task{Name: t.Name, Operation: cloneOperation(t.Operation)}
	}
	out.Auth = Authorization{
		Enabled:   p.Auth.Enabled,
		Tokens:    append([]Token(nil), p.Auth.Tokens...),
		Passwords: append([]UsernamePassword(nil), p.Auth.Passwords...),
	}
	return out
}

func cloneOperation(op Operation) Operation {
	switch o := op.(type) {
	case CommandOperation:
		c := CommandOperation{
			Program: o.Program,
			Args:    append([]string(nil), o.Args...),
			Dir:     o.Dir,
		}
		if o.Env != nil {
			c.Env = make(map[string]string, len(o.Env))
			for k, v := range o.Env {
				c.Env[k] = v
			}
		}
		return c
	default:
		return op
	}
}
