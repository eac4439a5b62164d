package domain_test

import (
	"testing"

	"github.com/chrisskorka/sysconf/domain"
	"github.com/chrisskorka/sysconf/flatten"
	"github.com/chrisskorka/sysconf/yamlvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptDomain_ListParseRender(t *testing.T) {
	d := domain.NewListDomain("apt", 0, "sudo apt-get install -y $value", "sudo apt-get remove -y $value")

	subtree := yamlvalue.Sequence(yamlvalue.String("htop"), yamlvalue.String("curl"))
	entries, err := d.Parse(subtree)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "htop", entries[0].Value.Str())
	assert.Empty(t, entries[0].Path)

	rendered, err := d.Render(entries)
	require.NoError(t, err)
	assert.True(t, yamlvalue.Equal(subtree, rendered))
}

func TestScriptDomain_MapParseRender(t *testing.T) {
	d := domain.NewMapDomain("symlinks", 1, "ln -sfn '$new_value' '$key1'", "ln -sfn '$new_value' '$key1'", "rm -f '$key1'")

	subtree := yamlvalue.Mapping(
		yamlvalue.Pair{Key: "/home/user/.vimrc", Value: yamlvalue.String("/dotfiles/vimrc")},
	)
	entries, err := d.Parse(subtree)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, flatten.Path{"/home/user/.vimrc"}, entries[0].Path)

	rendered, err := d.Render(entries)
	require.NoError(t, err)
	assert.True(t, yamlvalue.Equal(subtree, rendered))
}

func TestScriptDomain_DiffAction_Add(t *testing.T) {
	d := domain.NewMapDomain("git-config-global", 1, "git config --global $key1 '$new_value'", "git config --global $key1 '$new_value'", "git config --global --unset $key1")

	newEntry := &domain.Entry{DomainKey: "git-config-global", Kind: domain.MapKind, Path: flatten.Path{"user.name"}, Value: yamlvalue.String("Ada")}
	action, err := d.DiffAction(nil, newEntry)
	require.NoError(t, err)
	assert.Equal(t, domain.Add, action.Kind)
	assert.Equal(t, "git config --global user.name 'Ada'", action.Script)
}

func TestScriptDomain_DiffAction_Remove(t *testing.T) {
	d := domain.NewMapDomain("symlinks", 1, "ln -sfn '$new_value' '$key1'", "ln -sfn '$new_value' '$key1'", "rm -f '$key1'")
	oldEntry := &domain.Entry{DomainKey: "symlinks", Kind: domain.MapKind, Path: flatten.Path{"/home/user/.vimrc"}, Value: yamlvalue.String("/dotfiles/vimrc")}

	action, err := d.DiffAction(oldEntry, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.Remove, action.Kind)
	assert.Equal(t, "rm -f '/home/user/.vimrc'", action.Script)
}

func TestScriptDomain_DiffAction_Update(t *testing.T) {
	d := domain.NewMapDomain("greeting", 1, "echo $key:$new_value", "echo $key:$old_value->$new_value", "echo unset $key")

	oldEntry := &domain.Entry{DomainKey: "greeting", Kind: domain.MapKind, Path: flatten.Path{"greeting"}, Value: yamlvalue.String("a")}
	newEntry := &domain.Entry{DomainKey: "greeting", Kind: domain.MapKind, Path: flatten.Path{"greeting"}, Value: yamlvalue.String("b")}

	action, err := d.DiffAction(oldEntry, newEntry)
	require.NoError(t, err)
	assert.Equal(t, domain.Update, action.Kind)
	assert.Equal(t, "echo greeting:a->b", action.Script)
}

func TestScriptDomain_DiffAction_NoOp(t *testing.T) {
	d := domain.NewListDomain("apt", 0, "sudo apt-get install -y $value", "sudo apt-get remove -y $value")
	oldEntry := &domain.Entry{DomainKey: "apt", Kind: domain.ListKind, Value: yamlvalue.String("htop")}
	newEntry := &domain.Entry{DomainKey: "apt", Kind: domain.ListKind, Value: yamlvalue.String("htop")}

	action, err := d.DiffAction(oldEntry, newEntry)
	require.NoError(t, err)
	assert.Equal(t, domain.NoOp, action.Kind)
	assert.Empty(t, action.Script)
}

func TestScriptDomain_DiffAction_ListCannotUpdate(t *testing.T) {
	d := domain.NewListDomain("apt", 0, "sudo apt-get install -y $value", "sudo apt-get remove -y $value")
	oldEntry := &domain.Entry{DomainKey: "apt", Kind: domain.ListKind, Value: yamlvalue.String("htop")}
	newEntry := &domain.Entry{DomainKey: "apt", Kind: domain.ListKind, Value: yamlvalue.String("vim")}

	_, err := d.DiffAction(oldEntry, newEntry)
	assert.Error(t, err)
}

func TestScriptDomain_DiffAction_NeitherIsError(t *testing.T) {
	d := domain.NewListDomain("apt", 0, "add", "remove")
	_, err := d.DiffAction(nil, nil)
	assert.Error(t, err)
}

func TestEntryID_ListIncludesValue(t *testing.T) {
	a := domain.Entry{DomainKey: "apt", Kind: domain.ListKind, Value: yamlvalue.String("htop")}
	b := domain.Entry{DomainKey: "apt", Kind: domain.ListKind, Value: yamlvalue.String("curl")}
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestEntryID_MapExcludesValue(t *testing.T) {
	a := domain.Entry{DomainKey: "symlinks", Kind: domain.MapKind, Path: flatten.Path{"x"}, Value: yamlvalue.String("1")}
	b := domain.Entry{DomainKey: "symlinks", Kind: domain.MapKind, Path: flatten.Path{"x"}, Value: yamlvalue.String("2")}
	assert.Equal(t, a.ID(), b.ID())
}

func TestRegistry_Builtins(t *testing.T) {
	r := domain.NewRegistry()
	assert.True(t, r.IsBuiltin("apt"))
	assert.True(t, r.IsBuiltin("gsettings"))
	assert.False(t, r.IsBuiltin("not-a-real-domain"))

	d, ok := r.Builtin("dconf")
	require.True(t, ok)
	assert.Equal(t, domain.MapKind, d.Kind())
	assert.Equal(t, 1, d.PathDepth())
}

func TestNewUserDomain_MapRequiresUpdate(t *testing.T) {
	_, err := domain.NewUserDomain("mydomain", domain.UserDomainSpec{
		Type: domain.MapKind, Depth: 1, Add: "echo add", Remove: "echo remove",
	})
	assert.Error(t, err)
}

func TestNewUserDomain_List(t *testing.T) {
	d, err := domain.NewUserDomain("apt", domain.UserDomainSpec{
		Type: domain.ListKind, Depth: 0, Add: "sudo apt install -y $value", Remove: "sudo apt remove -y $value",
	})
	require.NoError(t, err)
	action, err := d.DiffAction(nil, &domain.Entry{DomainKey: "apt", Kind: domain.ListKind, Value: yamlvalue.String("htop")})
	require.NoError(t, err)
	assert.Equal(t, "sudo apt install -y htop", action.Script)
}

func TestSpecEqual(t *testing.T) {
	update := "echo $new_value"
	a := domain.UserDomainSpec{Type: domain.MapKind, Depth: 1, Add: "add", Update: &update, Remove: "remove"}
	b := domain.UserDomainSpec{Type: domain.MapKind, Depth: 1, Add: "add", Update: &update, Remove: "remove"}
	c := domain.UserDomainSpec{Type: domain.MapKind, Depth: 1, Add: "add", Update: nil, Remove: "remove"}

	assert.True(t, domain.SpecEqual(a, b))
	assert.False(t, domain.SpecEqual(a, c))
}
