/*Package interval implements the closed, 1-based genomic interval used
  throughout the locus-resolution core, its overlap primitive, and the
  undirected-graph community-detection routines (connected components and
  maximal cliques) used to cluster transcripts into superloci, subloci, and
  monosublocus-holders.

  Unlike a BED-style interval-union, intervals here are not merged: each one
  stays attached to the transcript it came from, and the graph operations
  describe relationships between transcripts rather than coverage of a
  chromosome.
*/
package interval
