/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"dirpx.dev/placer"
	"dirpx.dev/placer/apis"
	"dirpx.dev/placer/config"
	"dirpx.dev/placer/errors"
	"dirpx.dev/placer/logger"
	"dirpx.dev/placer/metrics"
	"dirpx.dev/placer/reveal"
)

// NewRunCmd returns the run command.
func NewRunCmd() *cobra.Command {
	var (
		sf          sceneFlags
		fps         float64
		watch       bool
		metricsAddr string
		partFlags   []string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Place objects from surface hits read on stdin",
		Long: `Read one command per line from stdin and drive a placer with it.

Commands:
  px py pz nx ny nz   place at point p on a surface with normal n
  clear               remove everything placed
  next | prev         select the next or previous prototype
  random              select prototypes at random
  select <i>          select prototype i
  reveal              drop in the next part of the current object
  reset               hide the current object's parts again

Placements are throttled to --rate per second, like a frame loop would.
With --watch the configuration file is reloaded when it changes.
Each --part x,y,z adds a part, offset in the object's local space, that
reveal drops in one at a time.

Examples:
  printf '0 0 2 0 1 0\n' | placer run -p chair -p lamp
  printf '0 0 2 0 1 0\nreveal\nreveal\n' | placer run -p shelf --part 0,1,0 --part 0,2,0
  placer run -c placer.yaml --watch --metrics-addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			log := logger.Named(nil, "run")

			cfg, err := sf.loadConfig()
			if err != nil {
				return err
			}
			parts := make([]mgl64.Vec3, 0, len(partFlags))
			for _, pf := range partFlags {
				off, err := parseVec3(pf)
				if err != nil {
					return errors.Wrap(err, "--part")
				}
				parts = append(parts, off)
			}
			w, err := sf.newWorld()
			if err != nil {
				return err
			}

			opts := sf.options(w)
			if metricsAddr != "" {
				reg := prometheus.NewRegistry()
				reg.MustRegister(collectors.NewGoCollector())
				opts = append(opts, placer.WithRecorder(metrics.NewRecorder(reg)))
				srv := &http.Server{
					Addr:              metricsAddr,
					Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
					ReadHeaderTimeout: 5 * time.Second,
				}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						log.Errorw("metrics server failed", logger.FieldError, err)
					}
				}()
				defer func() {
					sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
					defer cancel()
					_ = srv.Shutdown(sctx)
				}()
				log.Infow("serving metrics", "addr", metricsAddr)
			}

			p, err := placer.New(w.scene, cfg, opts...)
			if err != nil {
				return err
			}

			if watch && sf.configPath != "" {
				cw, err := config.NewWatcher(sf.configPath, 0)
				if err != nil {
					return err
				}
				cw.OnReload(func(next apis.Config) error {
					next, err := sf.override(next)
					if err != nil {
						return err
					}
					return p.SetConfig(next)
				})
				cw.Start()
				defer func() { _ = cw.Stop() }()
			}

			limit := rate.Inf
			if fps > 0 {
				limit = rate.Limit(fps)
			}
			s := &session{
				placer:  p,
				scene:   w.scene,
				viewer:  w.camera.Position(),
				out:     cmd.OutOrStdout(),
				limiter: rate.NewLimiter(limit, 1),
				parts:   parts,
				anim:    reveal.NewTween(reveal.DefaultFrame),
			}
			defer s.stopReveal()
			return s.serve(ctx, cmd.InOrStdin())
		},
	}
	sf.bind(cmd)
	cmd.Flags().Float64Var(&fps, "rate", 30, "Maximum placements per second; 0 disables throttling")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload the configuration file when it changes")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	cmd.Flags().StringArrayVar(&partFlags, "part", nil, "Part offset x,y,z revealed by the reveal command (repeatable)")
	return cmd
}

// session executes run commands against one placer.
type session struct {
	placer  *placer.Placer
	scene   apis.Instantiator
	viewer  mgl64.Vec3
	out     io.Writer
	limiter *rate.Limiter

	// parts are local offsets spawned under each placed object on the
	// first reveal.
	parts []mgl64.Vec3
	anim  reveal.Animator
	// seq reveals the parts of the instance seqID.
	seq   *reveal.Sequencer
	seqID string
}

// serve handles lines from in until EOF or ctx is done. Bad lines are
// reported and skipped.
func (s *session) serve(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if err := s.handle(ctx, sc.Text()); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
	return sc.Err()
}

// handle executes one line.
func (s *session) handle(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	fields := strings.Fields(line)
	switch fields[0] {
	case "clear":
		s.stopReveal()
		if err := s.placer.ClearAll(ctx); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "cleared")
	case "reveal":
		seq, err := s.revealer(ctx)
		if err != nil {
			return err
		}
		if !seq.Advance(ctx) {
			fmt.Fprintln(s.out, "revealed all")
			return nil
		}
		fmt.Fprintf(s.out, "revealed %d left\n", seq.Remaining())
	case "reset":
		seq, err := s.revealer(ctx)
		if err != nil {
			return err
		}
		seq.Reset()
		fmt.Fprintln(s.out, "reset")
	case "next":
		fmt.Fprintf(s.out, "selected %d\n", s.placer.SelectNext())
	case "prev":
		fmt.Fprintf(s.out, "selected %d\n", s.placer.SelectPrevious())
	case "random":
		s.placer.RandomizeSelection()
		fmt.Fprintln(s.out, "selected random")
	case "select":
		if len(fields) != 2 {
			return errors.New("usage: select <index>")
		}
		i, err := strconv.Atoi(fields[1])
		if err != nil {
			return errors.Wrapf(err, "index %q", fields[1])
		}
		s.placer.SetSelectionIndex(i)
		fmt.Fprintf(s.out, "selected %d\n", i)
	default:
		return s.place(ctx, fields)
	}
	return nil
}

func (s *session) place(ctx context.Context, fields []string) error {
	if len(fields) != 6 {
		return errors.Newf("expected 6 numbers or a command, got %q", strings.Join(fields, " "))
	}
	point, err := parseVec3(strings.Join(fields[:3], " "))
	if err != nil {
		return errors.Wrap(err, "point")
	}
	normal, err := parseVec3(strings.Join(fields[3:], " "))
	if err != nil {
		return errors.Wrap(err, "normal")
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	s.stopReveal()
	ok, err := s.placer.TryPlace(ctx, point, normal)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(s.out, "rejected")
		return nil
	}
	inst, _ := s.placer.Current()
	v := newInstanceView(inst, s.viewer)
	fmt.Fprintf(s.out, "placed %s %s yaw=%.1f\n", v.Prototype, v.ID, v.Yaw)
	return nil
}

// revealer returns the sequence over the current instance's parts. The
// parts are spawned hidden, as children of the primary, on first use.
func (s *session) revealer(ctx context.Context) (*reveal.Sequencer, error) {
	inst, ok := s.placer.Current()
	if !ok {
		return nil, errors.New("nothing placed")
	}
	if s.seq != nil && s.seqID == inst.ID {
		return s.seq, nil
	}
	s.stopReveal()
	if len(s.parts) == 0 {
		return nil, errors.New("no parts to reveal; pass --part")
	}

	pos, rot := inst.Primary.Position(), inst.Primary.Rotation()
	items := make([]reveal.Item, 0, len(s.parts))
	for i, off := range s.parts {
		h, err := s.scene.Instantiate(ctx, apis.Prototype(fmt.Sprintf("%s/part%d", inst.Prototype, i)))
		if err != nil {
			return nil, errors.Wrapf(err, "part %d", i)
		}
		h.SetParent(inst.Primary)
		h.SetPosition(pos.Add(rot.Rotate(off)))
		h.SetRotation(rot)
		target, ok := h.(reveal.Target)
		if !ok {
			return nil, errors.Newf("part %d cannot be hidden", i)
		}
		items = append(items, reveal.Item{Target: target})
	}

	seq, err := reveal.New(items, reveal.WithAnimator(s.anim), reveal.WithLogger(logger.Named(nil, "run")))
	if err != nil {
		return nil, err
	}
	seq.Start()
	s.seq, s.seqID = seq, inst.ID
	return seq, nil
}

// stopReveal stops the motions of the current sequence, if any.
func (s *session) stopReveal() {
	if s.seq != nil {
		s.seq.Reset()
		s.seq, s.seqID = nil, ""
	}
}
