package player_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lifeplayer/internal/bridge"
	"github.com/san-kum/lifeplayer/internal/life"
	"github.com/san-kum/lifeplayer/internal/notify"
	"github.com/san-kum/lifeplayer/internal/player"
	"github.com/san-kum/lifeplayer/internal/schedule"
)

const glider = "bo$2bo$3o!"

var _ = Describe("Controller", func() {
	var (
		engine  *fakeEngine
		monitor *bridge.Monitor
		reader  *fakeReader
		clock   *schedule.Virtual
		notices *notify.Scheduler
		ctrl    *player.Controller
	)

	newController := func(margin int, delay time.Duration) *player.Controller {
		c, err := player.New(player.Options{
			Engine:    monitor,
			Surface:   surface{},
			Context:   surface{},
			Reader:    reader,
			Scheduler: clock,
			Notifier:  notices,
			Margin:    margin,
			Delay:     delay,
		})
		Expect(err).NotTo(HaveOccurred())
		return c
	}

	loadGlider := func() {
		ctrl.SelectFiles("glider.rle")
		reader.complete(len(reader.pending)-1, glider)
	}

	BeforeEach(func() {
		engine = newFakeEngine()
		engine.invalid["not a pattern"] = "unexpected token"
		monitor = bridge.NewMonitor(engine, nil)
		reader = &fakeReader{}
		clock = schedule.NewVirtual()
		notices = notify.New(clock)
		ctrl = newController(200, 10*time.Millisecond)
	})

	AfterEach(func() {
		Expect(monitor.Violations()).To(BeEmpty())
	})

	Describe("New", func() {
		It("rejects missing collaborators", func() {
			_, err := player.New(player.Options{Surface: surface{}, Context: surface{}, Reader: reader, Scheduler: clock})
			Expect(err).To(MatchError(player.ErrMissingOption))
		})

		It("rejects a negative margin", func() {
			_, err := player.New(player.Options{
				Engine: engine, Surface: surface{}, Context: surface{}, Reader: reader, Scheduler: clock,
				Margin: -1,
			})
			Expect(err).To(MatchError(player.ErrInvalidMargin))
		})

		It("defaults the delay", func() {
			c, err := player.New(player.Options{Engine: engine, Surface: surface{}, Context: surface{}, Reader: reader, Scheduler: clock})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Status().Delay).To(Equal(player.DefaultDelay))
			Expect(c.State()).To(Equal(player.Idle))
		})
	})

	Describe("loading", func() {
		It("ignores an empty selection", func() {
			ctrl.SelectFiles()
			ctrl.SelectFiles("")
			Expect(ctrl.State()).To(Equal(player.Idle))
			Expect(reader.pending).To(BeEmpty())
		})

		It("enters Loading until the read resolves", func() {
			ctrl.SelectFiles("glider.rle")
			Expect(ctrl.State()).To(Equal(player.Loading))
			Expect(ctrl.Status().Loading).To(BeTrue())
			Expect(engine.calls).To(BeEmpty())
		})

		It("loads, expands and draws a valid pattern once", func() {
			loadGlider()

			Expect(engine.calls).To(Equal([]string{"load", "expand:200", "draw"}))
			Expect(ctrl.State()).To(Equal(player.LoadedPaused))
			Expect(ctrl.Status().Loading).To(BeFalse())
			Expect(notices.Pending()).To(Equal(1))
		})

		It("surfaces the engine message verbatim and never steps or draws", func() {
			ctrl = newController(200, 10*time.Millisecond)
			ctrl.SelectFiles("bad.rle")
			reader.complete(0, "not a pattern")

			Expect(ctrl.State()).To(Equal(player.LoadFailed))
			Expect(ctrl.Status().Message).To(Equal("unexpected token"))
			Expect(engine.count("draw")).To(Equal(0))
			Expect(engine.count("step")).To(Equal(0))
			Expect(notices.Pending()).To(Equal(0))

			Expect(ctrl.Start()).To(MatchError(player.ErrNotReady))
			clock.Advance(time.Second)
			Expect(engine.count("step")).To(Equal(0))

			loadGlider()
			Expect(ctrl.State()).To(Equal(player.LoadedPaused))
		})

		It("reports ingestion failures without calling the engine", func() {
			ctrl.SelectFiles("missing.rle")
			reader.failRead(0, errors.New("ingest: open missing.rle: no such file"))

			Expect(ctrl.State()).To(Equal(player.LoadFailed))
			Expect(ctrl.Status().Message).To(Equal("ingest: open missing.rle: no such file"))
			Expect(engine.calls).To(BeEmpty())
		})

		It("discards a stale read superseded by a newer selection", func() {
			ctrl.SelectFiles("first.rle")
			ctrl.SelectFiles("second.rle")

			reader.complete(1, glider)
			Expect(ctrl.Status().Source).To(Equal("second.rle"))
			engine.reset()

			reader.complete(0, "not a pattern")
			Expect(engine.calls).To(BeEmpty())
			Expect(ctrl.State()).To(Equal(player.LoadedPaused))
			Expect(ctrl.Status().Source).To(Equal("second.rle"))
		})

		It("discards a pending read once a preset is loaded", func() {
			ctrl.SelectFiles("slow.rle")
			ctrl.LoadText("glider", glider)
			Expect(ctrl.State()).To(Equal(player.LoadedPaused))

			engine.reset()
			reader.complete(0, glider)
			Expect(engine.calls).To(BeEmpty())
			Expect(ctrl.Status().Source).To(Equal("glider"))
		})

		It("cancels playback when a new file is selected", func() {
			loadGlider()
			Expect(ctrl.Start()).To(Succeed())
			clock.Advance(30 * time.Millisecond)
			steps := engine.count("step")

			ctrl.SelectFiles("next.rle")
			Expect(ctrl.State()).To(Equal(player.Loading))
			clock.Advance(time.Second)
			Expect(engine.count("step")).To(Equal(steps))
			Expect(ctrl.Start()).To(MatchError(player.ErrBusy))
		})

		It("returns to Idle when the error is dismissed", func() {
			ctrl.LoadText("bad", "not a pattern")
			ctrl.DismissError()
			Expect(ctrl.State()).To(Equal(player.Idle))
			Expect(ctrl.Status().Message).To(BeEmpty())
		})
	})

	Describe("playback", func() {
		BeforeEach(func() {
			ctrl = newController(200, 50*time.Millisecond)
			loadGlider()
			engine.reset()
		})

		It("steps and draws once per tick", func() {
			Expect(ctrl.Start()).To(Succeed())
			clock.Advance(175 * time.Millisecond)

			Expect(engine.count("step")).To(Equal(3))
			Expect(engine.count("draw")).To(Equal(3))
			Expect(engine.calls).To(Equal([]string{"step", "draw", "step", "draw", "step", "draw"}))
			Expect(ctrl.State()).To(Equal(player.Playing))
			Expect(clock.Pending()).To(BeNumerically(">=", 1))
		})

		It("keeps a single loop across repeated starts", func() {
			Expect(ctrl.Start()).To(Succeed())
			Expect(ctrl.Start()).To(Succeed())

			clock.Advance(500 * time.Millisecond)
			Expect(engine.count("step")).To(Equal(10))
		})

		It("restarts the interval on a second start", func() {
			Expect(ctrl.Start()).To(Succeed())
			clock.Advance(40 * time.Millisecond)
			Expect(ctrl.Start()).To(Succeed())
			clock.Advance(40 * time.Millisecond)
			Expect(engine.count("step")).To(Equal(0))
			clock.Advance(10 * time.Millisecond)
			Expect(engine.count("step")).To(Equal(1))
		})

		It("tracks generation and population history", func() {
			Expect(ctrl.Start()).To(Succeed())
			clock.Advance(150 * time.Millisecond)

			st := ctrl.Status()
			Expect(st.Generation).To(Equal(3))
			Expect(st.Population).To(Equal(8))
			Expect(st.History).To(Equal([]int{5, 6, 7, 8}))
		})

		It("caps the population history", func() {
			Expect(ctrl.Start()).To(Succeed())
			clock.Advance(time.Duration(player.HistorySize+10) * 50 * time.Millisecond)
			Expect(ctrl.Status().History).To(HaveLen(player.HistorySize))
		})

		It("applies a delay change only on the next start", func() {
			Expect(ctrl.Start()).To(Succeed())
			Expect(ctrl.SetDelay(10 * time.Millisecond)).To(Succeed())

			clock.Advance(100 * time.Millisecond)
			Expect(engine.count("step")).To(Equal(2))

			Expect(ctrl.Start()).To(Succeed())
			engine.reset()
			clock.Advance(100 * time.Millisecond)
			Expect(engine.count("step")).To(Equal(10))
		})

		It("cancels the loop on a margin change and redraws", func() {
			Expect(ctrl.Start()).To(Succeed())
			clock.Advance(100 * time.Millisecond)
			engine.reset()

			Expect(ctrl.SetMargin(20)).To(Succeed())
			Expect(engine.calls).To(Equal([]string{"load", "expand:20", "draw"}))
			Expect(ctrl.State()).To(Equal(player.LoadedPaused))

			clock.Advance(time.Second)
			Expect(engine.count("step")).To(Equal(0))
			Expect(ctrl.Status().Generation).To(Equal(0))
		})

		It("redraws on a margin change while paused without a second notice", func() {
			Expect(notices.Pending()).To(Equal(1))
			Expect(ctrl.SetMargin(10)).To(Succeed())
			Expect(engine.calls).To(Equal([]string{"load", "expand:10", "draw"}))
			Expect(notices.Pending()).To(Equal(1))
		})

		It("schedules a fresh notice when a margin change stops playback", func() {
			Expect(ctrl.Start()).To(Succeed())
			clock.Advance(7 * time.Second)
			Expect(notices.Pending()).To(Equal(0))

			Expect(ctrl.SetMargin(10)).To(Succeed())
			Expect(notices.Pending()).To(Equal(1))
		})

		It("ignores an unchanged margin", func() {
			Expect(ctrl.SetMargin(200)).To(Succeed())
			Expect(engine.calls).To(BeEmpty())
		})

		It("rejects invalid margins and delays", func() {
			Expect(ctrl.SetMargin(-5)).To(MatchError(player.ErrInvalidMargin))
			Expect(ctrl.SetDelay(0)).To(MatchError(player.ErrInvalidDelay))
			st := ctrl.Status()
			Expect(st.Margin).To(Equal(200))
			Expect(st.Delay).To(Equal(50 * time.Millisecond))
		})

		It("replays from generation zero on reset", func() {
			Expect(ctrl.Start()).To(Succeed())
			clock.Advance(100 * time.Millisecond)
			engine.reset()

			Expect(ctrl.Reset()).To(Succeed())
			Expect(engine.calls).To(Equal([]string{"load", "expand:200", "draw"}))
			Expect(ctrl.State()).To(Equal(player.LoadedPaused))
			Expect(ctrl.Status().Generation).To(Equal(0))
		})

		It("stops the loop on close", func() {
			Expect(ctrl.Start()).To(Succeed())
			ctrl.Close()
			clock.Advance(time.Second)
			Expect(engine.count("step")).To(Equal(0))
			Expect(ctrl.State()).To(Equal(player.LoadedPaused))
		})
	})

	Describe("margin before a pattern", func() {
		It("stores the margin without calling the engine", func() {
			Expect(ctrl.SetMargin(5)).To(Succeed())
			Expect(engine.calls).To(BeEmpty())
			Expect(ctrl.Reset()).To(MatchError(player.ErrNoPattern))

			loadGlider()
			Expect(engine.calls).To(Equal([]string{"load", "expand:5", "draw"}))
		})

		It("applies a margin changed during loading to the pending load", func() {
			ctrl.SelectFiles("glider.rle")
			Expect(ctrl.SetMargin(7)).To(Succeed())
			Expect(engine.calls).To(BeEmpty())

			reader.complete(0, glider)
			Expect(engine.calls).To(Equal([]string{"load", "expand:7", "draw"}))
		})
	})

	Describe("notification", func() {
		It("is hidden for a second, shown for five, then hidden", func() {
			loadGlider()

			clock.Advance(999 * time.Millisecond)
			Expect(ctrl.Status().Notice).To(BeFalse())
			clock.Advance(time.Millisecond)
			Expect(ctrl.Status().Notice).To(BeTrue())
			clock.Advance(4999 * time.Millisecond)
			Expect(ctrl.Status().Notice).To(BeTrue())
			clock.Advance(time.Millisecond)
			Expect(ctrl.Status().Notice).To(BeFalse())
		})

		It("is hidden immediately by a new selection", func() {
			loadGlider()
			clock.Advance(2 * time.Second)
			Expect(ctrl.Status().Notice).To(BeTrue())

			ctrl.SelectFiles("other.rle")
			Expect(ctrl.Status().Notice).To(BeFalse())
		})
	})
})

var _ = Describe("Controller with the life engine", func() {
	It("plays a glider end to end", func() {
		clock := schedule.NewVirtual()
		engine := life.NewEngine()
		monitor := bridge.NewMonitor(engine, nil)
		ctrl, err := player.New(player.Options{
			Engine:    monitor,
			Surface:   surface{},
			Context:   surface{},
			Reader:    &fakeReader{},
			Scheduler: clock,
			Margin:    4,
			Delay:     10 * time.Millisecond,
		})
		Expect(err).NotTo(HaveOccurred())

		ctrl.LoadText("glider", glider)
		Expect(ctrl.State()).To(Equal(player.LoadedPaused))
		Expect(ctrl.Start()).To(Succeed())

		clock.Advance(40 * time.Millisecond)
		Expect(engine.Generation()).To(Equal(4))
		Expect(ctrl.Status().Population).To(Equal(5))
		Expect(monitor.Violations()).To(BeEmpty())

		ctrl.LoadText("prose", "not a pattern")
		Expect(ctrl.State()).To(Equal(player.LoadFailed))
		Expect(ctrl.Status().Message).To(ContainSubstring("unexpected token"))
	})
})
