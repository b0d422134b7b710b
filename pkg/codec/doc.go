// Package codec reads and writes the binary creature records of generations
// three through eight and of the LGPE side-format.
//
// Every generation stores a record in a fixed-size buffer with two possible
// lengths: the box length persisted in storage slots, and the party length,
// which appends battle data (level, current HP and computed stats).
//
// # Record Formats
//
//	Type  Gen   Box  Party  Header  Block  Key
//	PK3   3      80    100      32     12  PID^OTID, 32-bit XOR, order PID%24
//	PK4   4     136    236       8     32  box: checksum, party tail: PID
//	PK5   5     136    220       8     32  box: checksum, party tail: PID
//	PK6   6     232    260       8     56  encryption constant
//	PK7   7     232    260       8     56  encryption constant
//	PB7   LGPE  260    260       8     56  encryption constant
//	PK8   8     328    344       8     80  encryption constant
//
// The bytes after the header are four equal blocks. Encryption shuffles the
// blocks by a selector taken from the key, then XORs every 16-bit word with
// the high half of a linear congruential generator. Party data after the
// blocks is keyed separately (see the crypto package).
//
// # Checksum
//
// The checksum is the 16-bit sum of the little-endian words of the four
// blocks. It is stored in the header and is not verified on decrypt:
//
//	r.SetNickname("SPARKY")
//	r.RefreshChecksum()
//	fmt.Println(r.ChecksumValid()) // true
//
// Encrypt refreshes the checksum before shuffling, so a mutated record
// always encrypts consistently.
//
// # Encryption State
//
// Records are always decrypted when handed out by New, View and Blank. The
// input is classified by a sentinel heuristic: generations four to eight
// check words that are zero in decrypted data (string terminators or unused
// padding), generation three checks whether the checksum verifies. After
// construction the state is tracked by the record itself, so Encrypt and
// Decrypt are no-ops when the record is already in the requested state.
//
// # Ownership
//
// New copies the input; View decodes the caller's buffer in place and every
// later write lands in that buffer. Owned reports which one applies.
//
// # Capabilities
//
// Fields that only some layouts carry are exposed through small interfaces:
//
//	if ht, ok := r.(codec.HyperTrainer); ok {
//	    ht.SetHyperTrained(derive.Speed, true)
//	}
//
// ContestStatter, HyperTrainer, Awakener, CPHolder, Relearner and
// RibbonHolder are available. Fields a layout lacks entirely read as zero
// and ignore writes.
//
// # Thread Safety
//
// A record is not safe for concurrent mutation. Distinct records share no
// mutable state and may be processed in parallel.
package codec
