// Package mapfile reads and writes CCP4 map files through a stateful cursor.
//
// A map file is a 1024-byte header, an optional block of 80-byte symmetry
// operator records, then one block per section. Each block holds the
// Dims[0]*Dims[1] items of the section followed by an optional local header
// whose size the file does not record.
//
// # Core Types
//
// **Reader**: decodes the header at open, then navigates and reads
//   - SeekSection / SeekRow / SeekData move the cursor, bound-checked
//   - ReadSection / ReadRow / ReadSectionHeader / ReadData transfer bytes
//   - SeekSymop / Symop / Symops read the symmetry block
//   - SectionDigest / DataDigest hash the payload
//
// **Writer**: writes a placeholder header at open and the final header at
// Close, appending data in between
//   - Setters for every header field; geometry freezes at the first data byte
//   - WriteSection / WriteRow / WriteSectionHeader / WriteData append bytes
//   - AppendSymop grows the symmetry block
//   - Float32 data feeds the running statistics written at Close
//
// **Handle**: the closed set {*Reader, *Writer} returned by OpenFile.
//
// # Reading
//
//	rd, err := mapfile.OpenReader("density.map")
//	if err != nil {
//	    return err
//	}
//	defer rd.Close()
//
//	values := make([]float32, rd.Dims()[0]*rd.Dims()[1])
//	for {
//	    err := mapfile.ReadSectionOf(rd, values)
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    ...
//	}
//
// # Writing
//
//	wr, err := mapfile.CreateWriter("out.map", mapfile.WithBigEndian())
//	...
//	_ = wr.SetDims([3]int32{64, 64, 0})
//	wr.SetCell([6]float32{50, 50, 50, 90, 90, 90})
//	wr.SetTitle("created by refine")
//	for _, sec := range sections {
//	    if err := mapfile.WriteSectionOf(wr, sec); err != nil {
//	        return err
//	    }
//	}
//	return wr.Close()
//
// Reading past the last section returns io.EOF; short transfers return an
// *errs.TransferError holding the item count actually moved.
package mapfile
