package engine_test

import (
	"bytes"
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/simtopo/engine"
	"github.com/sarchlab/simtopo/system"
	"github.com/sarchlab/simtopo/topology"
)

var _ = Describe("Run", func() {
	var (
		mockCtrl *gomock.Controller
		e        *MockEngine
		loader   *MockLoader
		topo     *topology.Topology
		workload system.Workload
		out      *bytes.Buffer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		e = NewMockEngine(mockCtrl)
		loader = NewMockLoader(mockCtrl)
		out = &bytes.Buffer{}

		s, err := system.MakeBuilder().BuildSystem("System")
		Expect(err).NotTo(HaveOccurred())
		topo = s.Topology
		workload = s.Workload
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should refuse topologies that are not validated", func() {
		_, err := engine.Run(context.Background(), e, loader, topo, workload, out)

		Expect(err).To(MatchError(engine.ErrNotValidated))
		Expect(out.String()).To(BeEmpty())
	})

	Context("with a validated topology", func() {
		BeforeEach(func() {
			Expect(topo.Validate()).To(Succeed())
		})

		It("should load, instantiate and simulate in order", func() {
			exit := engine.ExitEvent{Tick: 454646000, Cause: "exiting with last active thread context"}

			gomock.InOrder(
				loader.EXPECT().Load(workload),
				e.EXPECT().Instantiate(topo),
				e.EXPECT().Simulate(gomock.Any()).Return(exit, nil),
			)

			got, err := engine.Run(context.Background(), e, loader, topo, workload, out)

			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(exit))
			Expect(out.String()).To(Equal("Beginning Simulation!\n"))
			Expect(got.String()).To(Equal(
				"Exiting @ tick 454646000 because exiting with last active thread context"))
		})

		It("should stop when loading fails", func() {
			loader.EXPECT().Load(workload).Return(errors.New("no such file"))

			_, err := engine.Run(context.Background(), e, loader, topo, workload, out)

			Expect(err).To(MatchError(ContainSubstring("no such file")))
			Expect(out.String()).To(BeEmpty())
		})

		It("should stop when instantiation fails", func() {
			failure := errors.New("out of memory")
			loader.EXPECT().Load(workload)
			e.EXPECT().Instantiate(topo).Return(failure)

			_, err := engine.Run(context.Background(), e, loader, topo, workload, out)

			Expect(errors.Is(err, failure)).To(BeTrue())
		})

		It("should not start on a cancelled context", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := engine.Run(ctx, e, loader, topo, workload, out)

			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		})

		It("should run on the dry-run engine", func() {
			dry := &engine.DryRunEngine{}

			exit, err := engine.Run(context.Background(), dry, dry, topo, workload, out)

			Expect(err).NotTo(HaveOccurred())
			Expect(exit.String()).To(Equal("Exiting @ tick 0 because dry run"))
			Expect(dry.Topology).To(BeIdenticalTo(topo))
			Expect(dry.Workload.BinaryPath).To(Equal(system.DefaultBinary))
		})
	})
})
