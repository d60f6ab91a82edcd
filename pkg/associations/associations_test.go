// Test Type: Unit Test
// Description: Tests for association loading and application resolution

package associations_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/xdgmime/pkg/associations"
	"github.com/arthur-debert/xdgmime/pkg/desktop"
	"github.com/arthur-debert/xdgmime/pkg/errors"
	"github.com/arthur-debert/xdgmime/pkg/mimetype"
	"github.com/arthur-debert/xdgmime/pkg/paths"
	"github.com/arthur-debert/xdgmime/pkg/testutil"
	"github.com/arthur-debert/xdgmime/pkg/typegraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	configHome = "/home/user/.config"
	dataHome   = "/home/user/.local/share"
	dataSys    = "/usr/share"
	listPath   = configHome + "/mimeapps.list"
	cachePath  = dataSys + "/applications/mimeinfo.cache"
)

type env struct {
	fixture *testutil.Fixture
	graph   string
}

func newEnv(t *testing.T, apps ...string) *env {
	f := testutil.NewFixture(t)
	for _, app := range apps {
		f.DesktopEntry(dataSys, app)
	}
	return &env{fixture: f}
}

func (e *env) resolver(t *testing.T, opts ...associations.ResolverOption) (*associations.Resolver, *associations.Store) {
	t.Helper()
	fsys := e.fixture.FS()
	p := paths.New(paths.Options{
		DataDirs:   []string{dataHome, dataSys},
		ConfigDirs: []string{configHome, "/etc/xdg"},
	})
	lists, caches := associations.Files(fsys, p, []string{"gnome"})
	store, err := associations.Load(fsys, lists, caches)
	require.NoError(t, err)

	b := typegraph.NewBuilder()
	require.NoError(t, b.ParseSubclasses(strings.NewReader(e.graph), "subclasses"))
	finder := desktop.NewFinder(fsys, p.DataRoots())
	return associations.NewResolver(store, b.Build(), finder, opts...), store
}

func collect(r *associations.Resolver, t mimetype.TypeName) []string {
	var out []string
	for app := range r.BestApplications(t) {
		out = append(out, app)
	}
	return out
}

func TestBestApplications_AddedThenCache(t *testing.T) {
	e := newEnv(t, "editor.desktop", "viewer.desktop", "fallback.desktop")
	e.fixture.Write(listPath, "[Added Associations]\ntext/plain=editor.desktop;\n")
	e.fixture.Write(cachePath, "[MIME Cache]\ntext/plain=viewer.desktop;fallback.desktop;\n")
	r, _ := e.resolver(t)

	assert.Equal(t, []string{"editor.desktop", "viewer.desktop", "fallback.desktop"}, collect(r, "text/plain"))
}

func TestBestApplications_RemovedIsExcluded(t *testing.T) {
	e := newEnv(t, "editor.desktop", "viewer.desktop", "fallback.desktop")
	e.fixture.Write(listPath, "[Added Associations]\ntext/plain=editor.desktop;\n\n[Removed Associations]\ntext/plain=viewer.desktop;\n")
	e.fixture.Write(cachePath, "[MIME Cache]\ntext/plain=viewer.desktop;fallback.desktop;\n")
	r, _ := e.resolver(t)

	assert.Equal(t, []string{"editor.desktop", "fallback.desktop"}, collect(r, "text/plain"))
}

func TestBestApplications_ParentFallback(t *testing.T) {
	e := newEnv(t, "editor.desktop", "other.desktop", "third.desktop")
	e.graph = "text/x-csrc text/plain\ntext/x-csrc text/x-generic-code\n"
	e.fixture.Write(listPath, "[Default Applications]\ntext/plain=editor.desktop\n\n[Added Associations]\ntext/x-generic-code=third.desktop;\n")
	e.fixture.Write(cachePath, "[MIME Cache]\ntext/plain=other.desktop;\n")
	r, _ := e.resolver(t)

	assert.Equal(t, []string{"editor.desktop"}, collect(r, "text/x-csrc"))
}

func TestBestApplications_ParentSkippedWhenEmpty(t *testing.T) {
	e := newEnv(t, "coder.desktop")
	e.graph = "text/x-csrc text/plain\ntext/x-csrc text/x-generic-code\n"
	e.fixture.Write(cachePath, "[MIME Cache]\ntext/x-generic-code=coder.desktop;\n")
	r, _ := e.resolver(t)

	assert.Equal(t, []string{"coder.desktop"}, collect(r, "text/x-csrc"))
}

func TestBestApplications_DefaultFirstAndDeduplicated(t *testing.T) {
	e := newEnv(t, "editor.desktop", "viewer.desktop")
	e.fixture.Write(listPath, "[Default Applications]\ntext/plain=missing.desktop;viewer.desktop;\n\n[Added Associations]\ntext/plain=editor.desktop;viewer.desktop;\n")
	e.fixture.Write(cachePath, "[MIME Cache]\ntext/plain=viewer.desktop;editor.desktop;\n")
	r, _ := e.resolver(t)

	assert.Equal(t, []string{"viewer.desktop", "editor.desktop"}, collect(r, "text/plain"))

	app, ok := r.DefaultApplication("text/plain")
	require.True(t, ok)
	assert.Equal(t, "viewer.desktop", app)
}

func TestBestApplications_UndiscoverableSkipped(t *testing.T) {
	e := newEnv(t, "viewer.desktop")
	e.fixture.Write(listPath, "[Added Associations]\ntext/plain=ghost.desktop;\n")
	e.fixture.Write(cachePath, "[MIME Cache]\ntext/plain=viewer.desktop;\n")
	r, _ := e.resolver(t)

	assert.Equal(t, []string{"viewer.desktop"}, collect(r, "text/plain"))
}

func TestBestApplications_SubclassCycle(t *testing.T) {
	e := newEnv(t)
	e.graph = "application/x-a application/x-b\napplication/x-b application/x-a\n"
	r, _ := e.resolver(t)

	assert.Empty(t, collect(r, "application/x-a"))
	_, ok := r.BestApplication("application/x-a")
	assert.False(t, ok)
}

func TestBestApplications_Unaliases(t *testing.T) {
	e := newEnv(t, "reader.desktop")
	e.fixture.Write(cachePath, "[MIME Cache]\napplication/pdf=reader.desktop;\n")
	fsys := e.fixture.FS()
	lists, caches := associations.Files(fsys, paths.New(paths.Options{DataDirs: []string{dataSys}, ConfigDirs: []string{configHome}}), nil)
	store, err := associations.Load(fsys, lists, caches)
	require.NoError(t, err)

	b := typegraph.NewBuilder()
	require.NoError(t, b.ParseAliases(strings.NewReader("application/x-pdf application/pdf\n"), "aliases"))
	r := associations.NewResolver(store, b.Build(), desktop.NewFinder(fsys, []string{dataSys}))

	app, ok := r.BestApplication("application/x-pdf")
	require.True(t, ok)
	assert.Equal(t, "reader.desktop", app)
}

func TestBestApplications_FreshSequenceAndEarlyStop(t *testing.T) {
	e := newEnv(t, "a.desktop", "b.desktop", "c.desktop")
	e.fixture.Write(cachePath, "[MIME Cache]\ntext/plain=a.desktop;b.desktop;c.desktop;\n")
	r, _ := e.resolver(t)

	seq := r.BestApplications("text/plain")
	var firstTwo []string
	for app := range seq {
		firstTwo = append(firstTwo, app)
		if len(firstTwo) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a.desktop", "b.desktop"}, firstTwo)
	assert.Equal(t, []string{"a.desktop", "b.desktop", "c.desktop"}, r.Applications("text/plain"))
}

func TestBestApplications_UnknownType(t *testing.T) {
	r, _ := newEnv(t).resolver(t)
	assert.Empty(t, collect(r, "application/x-unknown"))
}

func TestStore_Layering(t *testing.T) {
	e := newEnv(t)
	e.fixture.Write(configHome+"/gnome-mimeapps.list", "[Default Applications]\ntext/html=gnome-web.desktop;\n[Added Associations]\ntext/html=gnome-web.desktop;\n")
	e.fixture.Write(listPath, "[Default Applications]\ntext/html=firefox.desktop;\n[Added Associations]\ntext/html=firefox.desktop;gnome-web.desktop;\n[Removed Associations]\ntext/html=lynx.desktop;\n")
	e.fixture.Write("/etc/xdg/mimeapps.list", "[Added Associations]\ntext/html=chromium.desktop\n[Removed Associations]\ntext/html=links.desktop;\n")
	e.fixture.Write(dataSys+"/applications/mimeapps.list", "[Default Applications]\ntext/html=distro.desktop;\n")
	e.fixture.Write(dataHome+"/applications/mimeinfo.cache", "[MIME Cache]\ntext/html=home.desktop;\n")
	e.fixture.Write(cachePath, "[MIME Cache]\ntext/html=sys.desktop;home.desktop;\n[MIME Edit Cache]\ntext/html=edit.desktop;\n[Category Cache]\nWebBrowser=firefox.desktop;\n")
	_, store := e.resolver(t)

	assert.Equal(t, []string{"gnome-web.desktop"}, store.DefaultApplications("text/html"))
	assert.Equal(t, []string{"gnome-web.desktop", "firefox.desktop", "chromium.desktop"}, store.AddedApplications("text/html"))
	assert.Equal(t, []string{"lynx.desktop", "links.desktop"}, store.RemovedApplications("text/html"))
	assert.Equal(t, []string{"home.desktop", "sys.desktop"}, store.CachedApplications("text/html", associations.ActionOpen))
	assert.Equal(t, []string{"edit.desktop", "home.desktop", "sys.desktop"}, store.CachedApplications("text/html", associations.ActionAll))
	assert.Equal(t, []string{"firefox.desktop"}, store.ApplicationsForCategory("WebBrowser"))
	assert.Len(t, store.Sources(), 6)

	record := store.Record("text/html", associations.ActionEdit)
	assert.Equal(t, mimetype.TypeName("text/html"), record.Type)
	assert.Equal(t, []string{"edit.desktop"}, record.Cached)
}

func TestWithAction(t *testing.T) {
	e := newEnv(t, "open.desktop", "edit.desktop")
	e.fixture.Write(cachePath, "[MIME Cache]\ntext/plain=open.desktop;\n[MIME Edit Cache]\ntext/plain=edit.desktop;\n")

	r, _ := e.resolver(t)
	assert.Equal(t, []string{"edit.desktop", "open.desktop"}, collect(r, "text/plain"))

	r, _ = e.resolver(t, associations.WithAction(associations.ActionOpen))
	assert.Equal(t, []string{"open.desktop"}, collect(r, "text/plain"))
}

func TestParseAction(t *testing.T) {
	action, err := associations.ParseAction("view")
	require.NoError(t, err)
	assert.Equal(t, associations.ActionView, action)

	action, err = associations.ParseAction("")
	require.NoError(t, err)
	assert.Equal(t, associations.ActionAll, action)

	_, err = associations.ParseAction("print")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestLoad_MissingFiles(t *testing.T) {
	store, err := associations.Load(testutil.NewFixture(t).FS(), []string{"/nope/mimeapps.list"}, []string{"/nope/mimeinfo.cache"})
	require.NoError(t, err)
	assert.Empty(t, store.Sources())
}
