package app

import (
	"errors"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/learnflix/learnflix/internal/activity"
	"github.com/learnflix/learnflix/internal/auth"
	"github.com/learnflix/learnflix/internal/catalog"
	"github.com/learnflix/learnflix/internal/conversation"
	"github.com/learnflix/learnflix/internal/learner"
	lessonplayer "github.com/learnflix/learnflix/internal/lesson"
	"github.com/learnflix/learnflix/internal/nav"
	"github.com/learnflix/learnflix/internal/router"
	"github.com/learnflix/learnflix/internal/screen"
	"github.com/learnflix/learnflix/internal/screens/activities"
	"github.com/learnflix/learnflix/internal/screens/dashboard"
	"github.com/learnflix/learnflix/internal/screens/lesson"
	"github.com/learnflix/learnflix/internal/screens/login"
	"github.com/learnflix/learnflix/internal/screens/profile"
	settingsscreen "github.com/learnflix/learnflix/internal/screens/settings"
	"github.com/learnflix/learnflix/internal/screens/teacher"
	"github.com/learnflix/learnflix/internal/screens/unavailable"
	"github.com/learnflix/learnflix/internal/screens/welcome"
	"github.com/learnflix/learnflix/internal/settings"
	"github.com/learnflix/learnflix/internal/ui/layout"
)

var ErrMissingDependency = errors.New("missing app dependency")

// Options carries the services the TUI is built on. Provider and Logger
// are optional.
type Options struct {
	Catalog   *catalog.Catalog
	State     *learner.State
	Navigator *nav.Navigator
	Auth      *auth.Service
	Provider  conversation.FeedbackProvider
	Logger    *zap.Logger

	// Splash shows the animated welcome screen before login.
	Splash bool
}

// shortcuts maps function keys to the post-login screens.
var shortcuts = map[string]nav.Screen{
	"f1": nav.Dashboard,
	"f2": nav.Lesson,
	"f3": nav.Activities,
	"f4": nav.AITeacher,
	"f5": nav.Profile,
	"f6": nav.Settings,
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	state  *learner.State
	log    *zap.Logger
	status string
	width  int
	height int
}

// newAppModel wires the screen factories around opts.
func newAppModel(opts Options) (AppModel, error) {
	switch {
	case opts.Catalog == nil:
		return AppModel{}, fmt.Errorf("%w: catalog", ErrMissingDependency)
	case opts.State == nil:
		return AppModel{}, fmt.Errorf("%w: learner state", ErrMissingDependency)
	case opts.Navigator == nil:
		return AppModel{}, fmt.Errorf("%w: navigator", ErrMissingDependency)
	case opts.Auth == nil:
		return AppModel{}, fmt.Errorf("%w: auth", ErrMissingDependency)
	}
	if opts.Provider == nil {
		opts.Provider = conversation.CannedProvider{}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	cat := opts.Catalog
	chosen := cat.Featured()
	prefs := settings.Defaults()

	factories := map[nav.Screen]router.Factory{
		nav.Login: func() screen.Screen {
			return login.New(opts.Auth)
		},
		nav.Dashboard: func() screen.Screen {
			return dashboard.New(cat, func(l catalog.Lesson) { chosen = l })
		},
		nav.Lesson: func() screen.Screen {
			return lesson.New(chosen, cat.LessonContent, opts.State, opts.Navigator,
				lessonplayer.WithLogger(log.Named("lesson")))
		},
		nav.Activities: func() screen.Screen {
			return activities.New(cat.Activities, opts.State, opts.Navigator,
				activity.WithLogger(log.Named("activity")))
		},
		nav.AITeacher: func() screen.Screen {
			sess, err := conversation.NewSession(conversation.Config{
				Greetings: conversation.GreetingsFrom(cat.Greetings()),
				Provider:  opts.Provider,
				Progress:  opts.State,
				Level:     opts.State.Level(),
				Logger:    log.Named("conversation"),
			})
			if err != nil {
				log.Error("conversation unavailable", zap.Error(err))
				return unavailable.New(nav.AITeacher.Title(), err)
			}
			return teacher.New(sess, cat.ScenarioName, cat.QuickPhrases)
		},
		nav.Profile: func() screen.Screen {
			return profile.New(opts.State, opts.Auth, cat.Profile, cat.ScenarioName)
		},
		nav.Settings: func() screen.Screen {
			return settingsscreen.New(&prefs)
		},
	}

	m := AppModel{
		router: router.New(opts.Navigator, factories),
		state:  opts.State,
		log:    log,
	}
	if opts.Splash && opts.Navigator.Current() == nav.Login {
		m.router.Replace(welcome.New(factories[nav.Login]))
	}
	return m, nil
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case router.NavErrorMsg:
		m.status = navStatus(msg.Err)
		m.log.Warn("navigation rejected", zap.Error(msg.Err))
		return m, nil

	case tea.KeyPressMsg:
		m.status = ""
		key := msg.String()
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		if target, ok := shortcuts[key]; ok {
			return m, router.GoTo(target)
		}
	}

	before := m.router.Hosted()
	cmd := m.router.Update(msg)
	if after := m.router.Hosted(); after != before {
		m.log.Debug("screen entered",
			zap.String("from", string(before)),
			zap.String("to", string(after)),
			zap.Int("xp", m.state.XP()))
	}
	return m, cmd
}

func navStatus(err error) string {
	switch {
	case errors.Is(err, nav.ErrLoginRequired):
		return "Faça login para continuar."
	case errors.Is(err, nav.ErrLoggedIn):
		return "Você já está conectado."
	}
	return err.Error()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	var stats layout.HeaderStats
	if snap := m.state.Snapshot(); snap.LoggedIn {
		stats = layout.HeaderStats{XP: snap.XP, StreakDays: snap.StreakDays, Level: string(snap.Level)}
	}
	header := layout.RenderHeader(title, stats, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.status, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = append(hints, p.KeyHints()...)
	}
	if m.state.LoggedIn() {
		hints = append(hints, layout.KeyHint{Key: "F1-F6", Description: "Menu"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Sair"})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m, err := newAppModel(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
