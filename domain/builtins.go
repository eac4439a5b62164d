package domain

import (
	"github.com/chrisskorka/sysconf/internal/maputil"
	"github.com/chrisskorka/sysconf/scripttemplate"
)

// Registry holds the built-in domains plus whatever user-declared domains
// a particular document registers. Builtins are fixed at process start
// and shared by reference; the registry itself is read-only after
// construction.
type Registry struct {
	builtins map[string]*ScriptDomain
}

// NewRegistry builds the registry with every built-in domain. Scripts
// are fixed at compile time so rendered documents stay bit-compatible
// across runs.
func NewRegistry() *Registry {
	r := &Registry{builtins: map[string]*ScriptDomain{}}
	for _, d := range builtinDomains() {
		r.builtins[d.Key()] = d
	}
	return r
}

// IsBuiltin reports whether key names a built-in domain.
func (r *Registry) IsBuiltin(key string) bool {
	_, ok := r.builtins[key]
	return ok
}

// Builtin returns the built-in domain for key, if any.
func (r *Registry) Builtin(key string) (*ScriptDomain, bool) {
	d, ok := r.builtins[key]
	return d, ok
}

// Keys returns every built-in domain key in sorted order, for
// "list-domains" CLI output.
func (r *Registry) Keys() []string {
	return maputil.SortedKeys(r.builtins)
}

func tmpl(s string) scripttemplate.Template { return scripttemplate.Template(s) }

func builtinDomains() []*ScriptDomain {
	return []*ScriptDomain{
		NewListDomain("apt", 0,
			tmpl("sudo apt-get install -y $value"),
			tmpl("sudo apt-get remove -y $value")),
		NewListDomain("snap", 0,
			tmpl("sudo snap install $value"),
			tmpl("sudo snap remove $value")),
		NewListDomain("pip", 0,
			tmpl("pip install --user $value"),
			tmpl("pip uninstall -y $value")),
		NewListDomain("groups", 0,
			tmpl("sudo groupadd -f $value"),
			tmpl("sudo groupdel $value")),
		NewListDomain("vscode-extensions", 0,
			tmpl("code --install-extension $value"),
			tmpl("code --uninstall-extension $value")),
		NewListDomain("apt-repository", 0,
			tmpl("sudo add-apt-repository -y $value"),
			tmpl("sudo add-apt-repository -y --remove $value")),
		NewListDomain("file-lines", 1,
			tmpl(`grep -qxF '$value' '$key1' || echo '$value' >> '$key1'`),
			tmpl(`sed -i '/^$value$/d' '$key1'`)),
		NewListDomain("user-groups", 1,
			tmpl("sudo usermod -aG $value $key1"),
			tmpl("sudo gpasswd -d $key1 $value")),

		NewMapDomain("symlinks", 1,
			tmpl("ln -sfn '$new_value' '$key1'"),
			tmpl("ln -sfn '$new_value' '$key1'"),
			tmpl("rm -f '$key1'")),
		NewMapDomain("git-config-global", 1,
			tmpl("git config --global $key1 '$new_value'"),
			tmpl("git config --global $key1 '$new_value'"),
			tmpl("git config --global --unset $key1")),
		NewMapDomain("apt-source-list", 1,
			tmpl("echo '$new_value' | sudo tee '$key1'"),
			tmpl("echo '$new_value' | sudo tee '$key1'"),
			tmpl("sudo rm -f '$key1'")),
		NewMapDomain("apt-keyring", 1,
			tmpl("curl -fsSL '$new_value' | sudo gpg --dearmor -o '$key1'"),
			tmpl("curl -fsSL '$new_value' | sudo gpg --dearmor -o '$key1'"),
			tmpl("sudo rm -f '$key1'")),

		NewMapDomainWithEncoder("dconf", 1,
			tmpl("dconf write '$key1' '$new_value'"),
			tmpl("dconf write '$key1' '$new_value'"),
			tmpl("dconf reset '$key1'"),
			EncodeDconfTopLevel),
		NewMapDomainWithEncoder("gsettings", 2,
			tmpl("gsettings set $key1 $key2 '$new_value'"),
			tmpl("gsettings set $key1 $key2 '$new_value'"),
			tmpl("gsettings reset $key1 $key2"),
			EncodeDconfTopLevel),
	}
}
