package fuzzer

import (
	"crypto/md5"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"
)

type Result struct {
	Case Case
	// Empty if the case passed.
	Failure string
}

func (self Result) Passed() bool {
	return self.Failure == ""
}

type Generator struct {
	onOutput func(result Result, hashSum string) error
	seed     int64
	count    uint
	workers  uint
	verbose  bool
}

func NewGenerator(
	onOutput func(result Result, hashSum string) error,
	seed int64,
	count uint,
	workers uint,
	verbose bool,
) Generator {
	if workers == 0 {
		workers = 1
	}

	return Generator{
		onOutput: onOutput,
		seed:     seed,
		count:    count,
		workers:  workers,
		verbose:  verbose,
	}
}

func ChunkInput[T any](input []T, chunkSize uint) [][]T {
	var chunks [][]T
	for {
		if len(input) == 0 {
			break
		}

		// Necessary check to avoid slicing beyond slice capacity
		if uint(len(input)) < chunkSize {
			chunkSize = uint(len(input))
		}

		chunks = append(chunks, input[0:chunkSize])
		input = input[chunkSize:]
	}

	return chunks
}

// Gen generates and checks `count` cases on `workers` goroutines.
// Identical cases are reported once; `onOutput` is never called concurrently.
func (self *Generator) Gen() error {
	start := time.Now()

	slots := make([]Result, self.count)
	chunkSize := (self.count + self.workers - 1) / self.workers
	chunks := ChunkInput[Result](slots, max(chunkSize, 1))

	wg := sync.WaitGroup{}
	for chunkIndex := range chunks {
		if self.verbose {
			log.Printf("Spawning worker %d for %d cases...\n", chunkIndex, len(chunks[chunkIndex]))
		}

		wg.Add(1)
		go self.work(&wg, chunks[chunkIndex], self.seed+int64(chunkIndex))
	}

	wg.Wait()

	if self.verbose {
		log.Printf("Generated %d cases in %v\n", self.count, time.Since(start))
	}

	hashset := make(map[string]struct{})
	for _, result := range slots {
		sum := fmt.Sprintf("%x", md5.Sum([]byte(result.Case.String())))

		if _, found := hashset[sum]; found {
			continue
		}
		hashset[sum] = struct{}{}

		if err := self.onOutput(result, sum); err != nil {
			return err
		}
	}

	if self.verbose {
		log.Printf("Reported %d unique cases\n", len(hashset))
	}

	return nil
}

// Every worker owns its random source, the parsers share no state.
func (self *Generator) work(wg *sync.WaitGroup, output []Result, seed int64) {
	defer wg.Done()

	random := rand.New(rand.NewSource(seed))
	for index := range output {
		input := randomCase(random)
		output[index] = Result{
			Case:    input,
			Failure: Check(input),
		}
	}
}
