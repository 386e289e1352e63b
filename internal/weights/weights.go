// Package weights persists network weights in a compact binary form.
//
// The layout is a length-prefixed topology tag followed by every weight as a
// big-endian 8-byte float:
//
//	[uint16 big-endian tag length][tag bytes, e.g. "2-2-1-3"]
//	[float64 big-endian] x WeightCount
//
// Weights are traversed connectivity layer ascending, source unit ascending,
// destination unit ascending. Save and Load share the single traversal; the
// order is a compatibility contract with previously written files, not an
// implementation detail. The tag is the format's only self-description.
package weights

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/ffnet-ml/ffnet/internal/nn"
	"github.com/ffnet-ml/ffnet/internal/topology"
)

// Save writes the network's topology tag and weights to w.
//
// A write failure is reported but bytes already written are not rolled back;
// the destination may hold a truncated file.
func Save(w io.Writer, net *nn.Network) error {
	bw := bufio.NewWriter(w)

	tag := net.Topology().String()
	if len(tag) > int(^uint16(0)) {
		return fmt.Errorf("weights: topology tag %d bytes, limit %d", len(tag), ^uint16(0))
	}
	if err := binary.Write(bw, binary.BigEndian, uint16(len(tag))); err != nil {
		return fmt.Errorf("weights: writing tag length: %w", err)
	}
	if _, err := bw.WriteString(tag); err != nil {
		return fmt.Errorf("weights: writing tag: %w", err)
	}

	if err := traverse(net.Topology(), func(l, k, j int) error {
		return binary.Write(bw, binary.BigEndian, net.Weight(l, k, j))
	}); err != nil {
		return fmt.Errorf("weights: writing values: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("weights: flushing: %w", err)
	}
	return nil
}

// Load reads a weight stream into the network.
//
// The stream's topology tag must equal the network's canonical descriptor;
// otherwise Load fails with ErrTopologyMismatch (carried by a *TagError).
// Every value is staged before any is applied, so the network's weights are
// untouched by any failure.
func Load(r io.Reader, net *nn.Network) error {
	br := bufio.NewReader(r)

	var tagLen uint16
	if err := binary.Read(br, binary.BigEndian, &tagLen); err != nil {
		return fmt.Errorf("weights: reading tag length: %w", err)
	}
	tagBytes := make([]byte, tagLen)
	if _, err := io.ReadFull(br, tagBytes); err != nil {
		return fmt.Errorf("weights: reading tag: %w", err)
	}

	want := net.Topology().String()
	if got := string(tagBytes); got != want {
		return &TagError{File: got, Network: want}
	}

	staged := make([]float64, net.Topology().WeightCount())
	if err := binary.Read(br, binary.BigEndian, staged); err != nil {
		return fmt.Errorf("weights: reading values: %w", err)
	}

	i := 0
	_ = traverse(net.Topology(), func(l, k, j int) error {
		net.SetWeight(l, k, j, staged[i])
		i++
		return nil
	})
	return nil
}

// SaveFile saves the network's weights to path, creating or truncating it.
func SaveFile(path string, net *nn.Network) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	if err := Save(f, net); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile loads weights from path into the network.
func LoadFile(path string, net *nn.Network) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	defer f.Close()
	return Load(f, net)
}

// traverse visits every weight index in the canonical persistence order.
func traverse(topo topology.Topology, visit func(l, k, j int) error) error {
	for l := 0; l < topo.ConnectivityLayers(); l++ {
		for k := 0; k < topo.Units(l); k++ {
			for j := 0; j < topo.Units(l+1); j++ {
				if err := visit(l, k, j); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
