package board_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/kryssord/kryss/pkg/kryss"
	"github.com/kryssord/kryss/pkg/kryss/board"
	"github.com/kryssord/kryss/pkg/kryss/geometry"
)

var _ = Describe("LoggingTracer", func() {
	var (
		hook *logtest.Hook
		b    *board.Board
	)

	BeforeEach(func() {
		var logger *logrus.Logger
		logger, hook = logtest.NewNullLogger()
		logger.SetLevel(logrus.DebugLevel)

		var err error
		b, err = board.New([]board.SlotSpec{
			spec(geometry.Right, 0, 0, 3, "a", "CAT"),
			spec(geometry.Down, 0, 0, 3, "b", "COW"),
		}, words{"a": {"CAT", "DOG"}}, board.WithTracer(board.LoggingTracer{Logger: logrus.NewEntry(logger)}))
		Expect(err).ToNot(HaveOccurred())
	})

	It("should log commits at info", func() {
		Expect(b.Place(0, "COT")).To(Succeed())

		entry := hook.LastEntry()
		Expect(entry.Level).To(Equal(logrus.InfoLevel))
		Expect(entry.Message).To(Equal("placing [0] a = COT"))
		Expect(entry.Data).To(HaveKeyWithValue("word", 0))
	})

	It("should warn about words unplaced by a disagreeing commit", func() {
		Expect(b.Place(0, "DOG")).To(Succeed())

		var warnings []*logrus.Entry
		for _, entry := range hook.AllEntries() {
			if entry.Level == logrus.WarnLevel {
				warnings = append(warnings, entry)
			}
		}
		Expect(warnings).To(HaveLen(1))
		Expect(warnings[0].Message).To(Equal("unplacing [1] b = COW"))
		Expect(warnings[0].Data).To(HaveKeyWithValue("word", 1))
		Expect(warnings[0].Data).To(HaveKeyWithValue("cause", 0))
	})

	It("should log explicit rollbacks at info", func() {
		Expect(b.Rollback(1)).To(Succeed())

		Expect(hook.AllEntries()).To(HaveLen(1))
		entry := hook.LastEntry()
		Expect(entry.Level).To(Equal(logrus.InfoLevel))
		Expect(entry.Message).To(Equal("unplacing [1] b = COW"))
		Expect(entry.Data).ToNot(HaveKey("cause"))
	})

	It("should log the status at debug", func() {
		Expect(b.SolveRepeated()).To(Equal(kryss.Solved))

		entry := hook.LastEntry()
		Expect(entry.Level).To(Equal(logrus.DebugLevel))
		Expect(entry.Data).To(HaveKeyWithValue("status", kryss.Solved))
	})
})
